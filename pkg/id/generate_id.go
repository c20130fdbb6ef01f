package id

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator hands out public identifiers for new records.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() string

func (f GeneratorFunc) NewID() string { return f() }

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Hex32 is the production generator backed by random UUIDs.
var Hex32 Generator = GeneratorFunc(NewID32)

// Sequence is a monotonic generator producing zero-padded 32-char hex ids.
// Used where ids must be predictable.
type Sequence struct{ n atomic.Uint64 }

func (s *Sequence) NewID() string {
	return fmt.Sprintf("%032x", s.n.Add(1))
}
