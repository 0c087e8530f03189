// Package id provides centralized ID generation for the backend.
//
// Dashboard and widget IDs are prefixed ULIDs:
//   - Lexicographic sortability: creation order is visible in the ID
//   - Prefixed types: dash_* and wgt_* make logs and exports readable
//   - Type safety: separate types prevent passing a widget ID as a dashboard ID
//
// IDs are immutable once assigned; imported documents keep whatever IDs they
// carry, so validation only requires a non-empty, safe string.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// DashboardID identifies a dashboard
type DashboardID string

// WidgetID identifies a widget within a dashboard
type WidgetID string

const (
	DashboardPrefix = "dash"
	WidgetPrefix    = "wgt"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator backed by crypto/rand
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Tests use it for deterministic IDs.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewDashboardID generates a new dashboard ID
func NewDashboardID() DashboardID {
	return DashboardID(Default().GenerateWithPrefix(DashboardPrefix))
}

// NewWidgetID generates a new widget ID
func NewWidgetID() WidgetID {
	return WidgetID(Default().GenerateWithPrefix(WidgetPrefix))
}

func (id DashboardID) String() string { return string(id) }
func (id WidgetID) String() string    { return string(id) }

// IsValid checks if an ID string is a valid ULID, with or without a prefix
func IsValid(id string) bool {
	_, err := Parse(id)
	return err == nil
}

// Parse parses a ULID string, stripping a known prefix first
func Parse(id string) (ulid.ULID, error) {
	if i := strings.IndexByte(id, '_'); i >= 0 {
		id = id[i+1:]
	}
	return ulid.Parse(id)
}

// Timestamp extracts the creation time from an ID
func Timestamp(id string) (time.Time, error) {
	parsed, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
