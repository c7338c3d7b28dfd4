// Package genjson generates random, syntactically valid JSON documents
// for the property-based fragmentation tests described in SPEC_FULL.md
// §8 property 5. It is internal because it is test tooling, not part of
// the public surface; grounded on original_source/tests/jsonoise.c,
// reworked from a depth-bounded recursive printf into a depth-bounded
// recursive strings.Builder writer seeded by math/rand for reproducible
// test runs.
package genjson

import (
	"fmt"
	"math/rand"
	"strings"
)

// Options bounds the shape of a generated document.
type Options struct {
	// MaxDepth caps container nesting, mirroring jsonoise's s_max_depth.
	MaxDepth int
	// MinStringLen floors how short a generated string may be (jsonoise
	// always floors keys at 1 so every object key is non-empty).
	MinStringLen int
}

// DefaultOptions mirrors a modest jsonoise invocation.
func DefaultOptions() Options {
	return Options{MaxDepth: 4, MinStringLen: 0}
}

// Generate produces one random top-level JSON document using rng for all
// random choices, so a caller can reproduce a failing case by reusing
// the same *rand.Rand seed.
func Generate(rng *rand.Rand, opts Options) string {
	var b strings.Builder
	writeVal(&b, rng, 0, opts)
	return b.String()
}

func writeVal(b *strings.Builder, rng *rand.Rand, depth int, opts Options) {
	if depth == opts.MaxDepth {
		writeScalar(b, rng, opts)
		return
	}

	r := rng.Intn(opts.MaxDepth) - depth
	if r <= 0 {
		writeScalar(b, rng, opts)
		return
	}

	isObject := r&1 == 1
	if isObject {
		b.WriteByte('{')
	} else {
		b.WriteByte('[')
	}
	for i := 0; i < r; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		if isObject {
			writeString(b, rng, 1)
			b.WriteByte(':')
		}
		writeVal(b, rng, depth+1, opts)
	}
	if isObject {
		b.WriteByte('}')
	} else {
		b.WriteByte(']')
	}
}

func writeScalar(b *strings.Builder, rng *rand.Rand, opts Options) {
	switch rng.Intn(4) {
	case 0:
		fmt.Fprintf(b, "%d", rng.Int31()-rng.Int31())
	case 1:
		reserved := []string{"false", "true", "null", "NaN", "Infinity", "-Infinity"}
		b.WriteString(reserved[rng.Intn(len(reserved))])
	case 2:
		n := rng.Int31() - rng.Int31()
		d := rng.Int31()
		if d == 0 {
			d = 1
		}
		fmt.Fprintf(b, "%g", float64(n)/float64(d))
	case 3:
		writeString(b, rng, opts.MinStringLen)
	}
}

// avoidASCII mirrors jsonoise's s_lookup CINV|CESC filter for raw
// single-byte code points: control characters, the quote, and the
// backslash are skipped rather than escaped, since the generator's goal
// is varied valid input, not escape-sequence coverage (escapes are
// covered by the hand-written scenario tests in §8).
func avoidASCII(cp rune) bool {
	return cp < 0x20 || cp == 0x7F || cp == '"' || cp == '\\'
}

func writeString(b *strings.Builder, rng *rand.Rand, minLen int) {
	length := rng.Intn(32)
	if length < minLen {
		length = minLen
	}
	b.WriteByte('"')
	count := 0
	for count < length {
		cp := rune(rng.Intn(0x110000))
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		if cp < 0x80 && avoidASCII(cp) {
			continue
		}
		b.WriteRune(cp)
		count++
	}
	b.WriteByte('"')
}
