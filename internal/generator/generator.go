// Package generator shuffles key sequences and draws shuffle seeds.
package generator

import (
	"math"
	"math/rand"
	"time"
)

const (
	minSeed = 1
	maxSeed = 100
)

// Generator draws random shuffle seeds.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Generator backed by src.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Seed returns a shuffle seed in [1, 100].
func (g *Generator) Seed() int {
	return minSeed + g.rnd.Intn(maxSeed-minSeed+1)
}

// Shuffle returns a reordered copy of seq. The same seq and seed always
// produce the same order; seq itself is left untouched.
func Shuffle[T any](seq []T, seed int) []T {
	out := make([]T, len(seq))
	copy(out, seq)
	current := float64(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(seededRandom(current) * float64(i+1)))
		if j > i {
			j = i
		}
		current++
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// seededRandom maps a seed to [0, 1) using the fractional part of sin(seed)*10000.
func seededRandom(seed float64) float64 {
	x := math.Sin(seed) * 10000
	return x - math.Floor(x)
}
