// A worker whose handshake write is visibly non-atomic: the port line lands
// first and the sentinel only after a delay. The parent must not resolve in
// between.
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

	f, err := os.OpenFile(*portFile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Fprintln(f, "sock=8421")
	f.Sync()

	time.Sleep(300 * time.Millisecond)

	fmt.Fprintln(f, "EOF")
	f.Sync()

	time.Sleep(2 * time.Second)
}
