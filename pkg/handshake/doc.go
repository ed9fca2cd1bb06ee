// Package handshake implements the line-oriented rendezvous record a child
// process writes to hand its bound port back to the parent that spawned it.
//
// The format is plain text so any runtime can produce it: zero or more
// key=value lines, then a final line containing exactly "EOF". The trailing
// sentinel exists because the write is not atomic from the reader's point of
// view; a reader must re-read and re-scan the whole file until the sentinel
// is the last line, and only then trust any value in it.
package handshake
