// A worker that dies before writing anything to the handshake file.
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	flag.String("port-filename", "", "handshake file path")
	flag.Parse()

	fmt.Fprintln(os.Stderr, "fatal: refusing to start")
	os.Exit(3)
}
