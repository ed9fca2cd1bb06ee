// A protocol violator: completes its record without ever publishing a port.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

func main() {
	portFile := flag.String("port-filename", "", "handshake file path")
	flag.Parse()

	f, err := os.OpenFile(*portFile, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(f, "state=confused")
	fmt.Fprintln(f, "EOF")
	f.Close()

	time.Sleep(2 * time.Second)
}
