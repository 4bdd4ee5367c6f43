package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Generator creates opaque IDs suitable for external references, such as
// the public identifiers attached to recorded reconciliation runs.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	return randomHex(16)
}

// PrefixedGenerator produces IDs like "run_4f9a..." so operators can tell
// at a glance what kind of record an ID belongs to.
type PrefixedGenerator struct {
	prefix string
}

func NewPrefixedGenerator(prefix string) *PrefixedGenerator {
	return &PrefixedGenerator{prefix: strings.TrimSpace(prefix)}
}

func (g *PrefixedGenerator) NewID() (string, error) {
	suffix, err := randomHex(12)
	if err != nil {
		return "", err
	}
	if g.prefix == "" {
		return suffix, nil
	}

	return g.prefix + "_" + suffix, nil
}

func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
