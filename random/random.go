// Package random holds the single randomness source shared by the scene
// animator and the stock search keyword fallback.
package random

import "math/rand"

// Source is satisfied by *rand.Rand
type Source interface {
	Float64() float64
	Intn(n int) int
}

type global struct{}

func (global) Float64() float64 { return rand.Float64() }
func (global) Intn(n int) int   { return rand.Intn(n) }

// Global draws from the process-wide math/rand source
var Global Source = global{}

// OrGlobal returns src, or Global when src is nil
func OrGlobal(src Source) Source {
	if src == nil {
		return Global
	}
	return src
}
