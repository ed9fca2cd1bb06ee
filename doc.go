/*
Package hatchway launches a worker process and discovers, through a
filesystem handshake, the network port the worker bound at runtime.

The parent and child share nothing but a temporary file. The parent creates
the file, spawns the worker with its path as the value of the
"--port-filename" argument, then polls the file until the worker has written
a complete record. The record is line-oriented text: key=value pairs, a
required "sock=<port>" line, and a final line containing exactly "EOF". The
trailing sentinel is the correctness mechanism against partial reads; until
it is the last line, everything read is discarded and the poll continues.

This design keeps the rendezvous language-agnostic and debuggable as plain
text: a worker in any runtime can participate by writing a few lines to a
path it received on its command line.

# Usage

	l := hatchway.New("./bin/worker",
		hatchway.WithTimeout(10*time.Second),
	)

	port, err := l.Start(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	// connect to 127.0.0.1:<port>

Start blocks until the port is resolved or the launch fails. Failures are
never conflated with a usable port: spawn errors surface immediately, a
malformed record (sentinel present but the port key missing or unparsable)
is fatal, and the default 30s timeout keeps a crashed or hung worker from
blocking the caller forever.

Go workers can write their side of the handshake with pkg/handshake and
emit structured status lines with pkg/status.
*/
package hatchway
