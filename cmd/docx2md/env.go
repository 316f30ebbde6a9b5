package main

import (
	"io"
	"os"
	"time"

	docx2md "github.com/alnah/go-docx2md"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(n int, opts ...docx2md.Option) ClosablePool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newPoolAdapter,
	}
}
