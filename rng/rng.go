// Package rng implements the seeded generator that drives every random decision in a
// render. A generator is a small comparable value: two generators that compare equal will
// produce identical streams.
package rng

import (
	"math"
	"math/bits"
)

const (
	multiplier = 6364136223846793005
	increment  = 1442695040888963407

	seedSaltLo = 0x64c1324d
	seedSaltHi = 0x045970e6
)

// Rng is a PCG32 (XSH-RR) generator with a cached Gaussian deviate.
type Rng struct {
	state     uint64
	cached    float64
	hasCached bool
}

// New seeds a generator from arbitrary bytes.
func New(seed []byte) *Rng {
	lo := Murmur2(seed, seedSaltLo)
	hi := Murmur2(seed, seedSaltHi)
	return &Rng{state: uint64(hi)<<32 | uint64(lo)}
}

// State exposes the raw 64-bit state for logging and diagnostics.
func (r *Rng) State() uint64 {
	return r.state
}

// Clone returns an independent copy positioned at the same point in the stream.
func (r *Rng) Clone() *Rng {
	c := *r
	return &c
}

// CopyFrom moves r to o's position in the stream.
func (r *Rng) CopyFrom(o *Rng) {
	*r = *o
}

// Equal reports whether both generators would produce the same stream.
func (r *Rng) Equal(o *Rng) bool {
	return *r == *o
}

// Uint32 advances the generator and returns 32 random bits.
func (r *Rng) Uint32() uint32 {
	old := r.state
	r.state = old*multiplier + increment
	xorshifted := uint32(((old >> 18) ^ old) >> 27)
	rot := int(old >> 59)
	return bits.RotateLeft32(xorshifted, -rot)
}

// Rnd returns a uniform value in [0, 1) with 32 bits of precision.
func (r *Rng) Rnd() float64 {
	return float64(r.Uint32()) / (1 << 32)
}

// Uniform returns a uniform value in [lo, hi).
func (r *Rng) Uniform(lo, hi float64) float64 {
	return lo + r.Rnd()*(hi-lo)
}

// Odds returns true with probability p. Odds(0) can still succeed when the draw is exactly 0.
func (r *Rng) Odds(p float64) bool {
	return r.Rnd() <= p
}

// Gauss draws from a normal distribution using the polar Box-Muller method. Each accepted
// pair yields two deviates; the second is cached for the next call.
func (r *Rng) Gauss(mean, stdev float64) float64 {
	if r.hasCached {
		v := r.cached
		r.cached = 0
		r.hasCached = false
		return mean + stdev*v
	}

	for {
		u := 2*r.Rnd() - 1
		v := 2*r.Rnd() - 1
		if z0, z1, ok := polar(u, v); ok {
			r.cached = z1
			r.hasCached = true
			return mean + stdev*z0
		}
	}
}

// polar turns a point drawn from the square [-1, 1)² into two independent standard normal
// deviates. Points outside the unit circle, and the origin, are rejected.
func polar(u, v float64) (z0, z1 float64, ok bool) {
	s := u*u + v*v
	if !(s > 0 && s < 1) {
		return 0, 0, false
	}
	m := math.Sqrt(-2 * math.Log(s) / s)
	return u * m, v * m, true
}
