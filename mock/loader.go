// Package mock provides test doubles for fable interfaces.
package mock

import "github.com/fwojciec/fable"

// Compile-time interface verification.
var _ fable.Loader = (*Loader)(nil)

// Loader is a mock implementation of fable.Loader.
type Loader struct {
	LoadFn func(path string) (*fable.Document, error)
}

func (l *Loader) Load(path string) (*fable.Document, error) {
	return l.LoadFn(path)
}
