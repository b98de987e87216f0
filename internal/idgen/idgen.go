package idgen

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	mrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errUnavailable = errors.New("random source unavailable")

// tier is one step of the fallback chain.
type tier struct {
	name string
	fn   func() (string, error)
}

// Generator produces record identifiers. It always returns some string:
// secure tiers are tried first and the timestamp tier cannot fail.
type Generator struct {
	uuidSource func() (uuid.UUID, error)
	reader     io.Reader
	now        func() time.Time
	logger     *zap.Logger

	mu     sync.Mutex
	pseudo *mrand.Rand

	tiers []tier
}

// Option customises a Generator.
type Option func(*Generator)

// WithUUIDSource replaces the UUID facility. nil disables the tier.
func WithUUIDSource(fn func() (uuid.UUID, error)) Option {
	return func(g *Generator) { g.uuidSource = fn }
}

// WithRandomReader replaces the secure byte source. nil disables the tier.
func WithRandomReader(r io.Reader) Option {
	return func(g *Generator) { g.reader = r }
}

// WithClock sets the clock used by the timestamp tier.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithPseudoRandom sets the non-cryptographic source used by the timestamp tier.
func WithPseudoRandom(r *mrand.Rand) Option {
	return func(g *Generator) { g.pseudo = r }
}

// WithLogger sets the logger that receives tier failure warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// New builds a Generator backed by the platform secure random source.
func New(opts ...Option) *Generator {
	g := &Generator{
		uuidSource: uuid.NewRandom,
		reader:     rand.Reader,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.pseudo == nil {
		g.pseudo = mrand.New(mrand.NewSource(g.now().UnixNano()))
	}

	g.tiers = []tier{
		{name: "uuid", fn: g.fromUUID},
		{name: "random-bytes", fn: g.fromRandomBytes},
		{name: "timestamp", fn: g.fromTimestamp},
	}
	return g
}

// New returns a fresh identifier.
func (g *Generator) New() string {
	for _, t := range g.tiers {
		id, err := t.fn()
		if err == nil && id != "" {
			return id
		}
		if err != nil {
			g.logger.Warn("id tier failed, falling back", zap.String("tier", t.name), zap.Error(err))
		}
	}
	// unreachable: the timestamp tier never fails
	return g.mustTimestamp()
}

func (g *Generator) fromUUID() (string, error) {
	if g.uuidSource == nil {
		return "", errUnavailable
	}
	id, err := g.uuidSource()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return id.String(), nil
}

func (g *Generator) fromRandomBytes() (string, error) {
	if g.reader == nil {
		return "", errUnavailable
	}
	buf := make([]byte, 16)
	if _, err := io.ReadFull(g.reader, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	words := make([]string, 0, 4)
	for i := 0; i < len(buf); i += 4 {
		words = append(words, fmt.Sprintf("%08x", binary.BigEndian.Uint32(buf[i:i+4])))
	}
	id := strings.Join(words, "-")
	if len(id) > 36 {
		id = id[:36]
	}
	return id, nil
}

func (g *Generator) fromTimestamp() (string, error) {
	return g.mustTimestamp(), nil
}

func (g *Generator) mustTimestamp() string {
	g.mu.Lock()
	fragment := g.pseudo.Uint32()
	g.mu.Unlock()
	return fmt.Sprintf("id-%d-%08x", g.now().UnixMilli(), fragment)
}
