package main

import (
	"fmt"

	docx2md "github.com/alnah/go-docx2md"
)

// ClosablePool is a Pool the CLI owns and closes when the run ends.
type ClosablePool interface {
	Pool
	Close() error
}

// poolAdapter adapts *docx2md.ConverterPool to the Pool interface.
type poolAdapter struct {
	pool *docx2md.ConverterPool
}

// Compile-time check that poolAdapter implements ClosablePool.
var _ ClosablePool = (*poolAdapter)(nil)

// newPoolAdapter creates a converter pool of size n.
func newPoolAdapter(n int, opts ...docx2md.Option) ClosablePool {
	return &poolAdapter{pool: docx2md.NewConverterPool(n, opts...)}
}

// Acquire returns nil once the pool is closed.
func (a *poolAdapter) Acquire() CLIConverter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release panics when given a converter this adapter did not hand out.
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*docx2md.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int    { return a.pool.Size() }
func (a *poolAdapter) Close() error { return a.pool.Close() }
