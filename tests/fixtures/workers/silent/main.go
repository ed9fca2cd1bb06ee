// A hung worker: accepts the handshake path and never writes to it.
package main

import (
	"flag"
	"time"
)

func main() {
	flag.String("port-filename", "", "handshake file path")
	flag.Parse()

	time.Sleep(30 * time.Second)
}
