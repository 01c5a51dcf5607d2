package types

import (
	"bufio"
	"io"
)

// Store is the part of the heap natives may use
type Store interface {
	Allocate(v Value, constant bool) Index
	Read(ix Index) (Value, error)
	Len() int
}

// HeapStats summarizes the heap and its collector
type HeapStats struct {
	Live        int // slots currently allocated
	Collections int // collector runs so far
	Freed       int // slots reclaimed so far
}

// CallContext is what a native function sees of the running program
type CallContext struct {
	Store Store
	Out   io.Writer
	In    *bufio.Reader

	// Stats reports heap and collector totals; nil when unavailable
	Stats func() HeapStats
}
