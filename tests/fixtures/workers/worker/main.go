// A well-behaved worker: binds an ephemeral TCP port, publishes it through
// the handshake file, emits one status line, then serves until killed.
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/mzachh/hatchway/pkg/handshake"
	"github.com/mzachh/hatchway/pkg/status"
)

func main() {
	portFile := flag.String("port-filename", "", "handshake file path")
	flag.Parse()

	if *portFile == "" {
		fmt.Fprintln(os.Stderr, "missing --port-filename")
		os.Exit(2)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		fmt.Fprintf(os.Stderr, "listen: %v\n", err)
		os.Exit(1)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	w := handshake.NewWriter()
	w.Set("service", "worker")
	w.Set("pid", fmt.Sprintf("%d", os.Getpid()))
	w.SetPort(port)
	if err := w.Commit(*portFile); err != nil {
		fmt.Fprintf(os.Stderr, "handshake: %v\n", err)
		os.Exit(1)
	}

	reporter := status.NewReporter(os.Stdout)
	reporter.Add("state", "listening")
	reporter.Add("port", port)
	reporter.AddTimestamp(float64(time.Now().UnixMilli()) / 1000.0)
	if err := reporter.Emit(); err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
	}

	// Self-terminate so orphaned fixtures never outlive a test run.
	go func() {
		time.Sleep(10 * time.Second)
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		conn.Close()
	}
}
