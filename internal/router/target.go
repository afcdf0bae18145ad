package router

import "bytes"

// BufferTarget collects rendered output in memory.
type BufferTarget struct {
	bytes.Buffer
}

var _ Target = (*BufferTarget)(nil)

func (b *BufferTarget) Clear() { b.Reset() }
