package services

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator hands out assessment and question identifiers
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator yields "1", "2", ... optionally prefixed. Deterministic,
// for tests and single-process demos.
type SequenceGenerator struct {
	prefix string
	next   atomic.Int64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

func (g *SequenceGenerator) NewID() string {
	return g.prefix + strconv.FormatInt(g.next.Add(1), 10)
}

// NewIDGenerator maps the configured strategy name to a generator
func NewIDGenerator(strategy string) IDGenerator {
	if strategy == "sequence" {
		return NewSequenceGenerator("")
	}
	return UUIDGenerator{}
}
