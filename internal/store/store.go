package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
	"github.com/mamadbah2/foodtracker/internal/repository/slot"
)

// IDGenerator issues identifiers for new and backfilled records.
type IDGenerator interface {
	New() string
}

// Store is the authoritative in-memory holder of the tracker state and owns
// its persistence to a single slot.
type Store struct {
	slot   slot.Slot
	key    string
	ids    IDGenerator
	logger *zap.Logger
	now    func() time.Time

	state *models.State
}

// Option customises a Store.
type Option func(*Store)

// WithClock sets the clock used for default order deadlines.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New builds a store bound to key in the given slot. The state is empty until Load.
func New(backend slot.Slot, key string, ids IDGenerator, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		slot:   backend,
		key:    key,
		ids:    ids,
		logger: logger,
		now:    time.Now,
		state:  &models.State{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the live state. Callers mutate it directly and then call Save.
func (s *Store) State() *models.State {
	return s.state
}

// NewID issues an identifier for a new record.
func (s *Store) NewID() string {
	return s.ids.New()
}

// Load replaces the in-memory state with the stored one, or with a fresh
// default dataset when the slot is absent or unusable. It never fails.
func (s *Store) Load(ctx context.Context) *models.State {
	state, err := s.read(ctx)
	switch {
	case err == nil:
	case errors.Is(err, slot.ErrNotFound):
		s.logger.Info("no saved state, using defaults", zap.String("key", s.key))
		state = defaultState(s.ids, s.now())
	default:
		s.logger.Warn("failed to load saved state, using defaults", zap.String("key", s.key), zap.Error(err))
		state = defaultState(s.ids, s.now())
	}
	s.state = state
	return state
}

// Save overwrites the slot with the current state. Failures are logged and
// the in-memory state is kept.
func (s *Store) Save(ctx context.Context) {
	payload, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Warn("failed to encode state", zap.Error(err))
		return
	}
	if err := s.slot.Set(ctx, s.key, string(payload)); err != nil {
		s.logger.Warn("failed to save state", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.logger.Debug("state saved", zap.String("key", s.key), zap.Int("bytes", len(payload)))
}

func (s *Store) read(ctx context.Context) (*models.State, error) {
	if s.slot == nil {
		return nil, slot.ErrNotFound
	}
	raw, err := s.slot.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, slot.ErrNotFound
	}

	var parsed *models.State
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse saved state: %w", err)
	}
	if parsed == nil {
		return nil, errors.New("parse saved state: document is null")
	}

	s.backfill(parsed)
	return parsed, nil
}

// backfill assigns ids to records saved before ids existed and turns missing
// collections into empty ones.
func (s *Store) backfill(state *models.State) {
	if state.Inventory == nil {
		state.Inventory = []models.InventoryItem{}
	}
	if state.Orders == nil {
		state.Orders = []models.Order{}
	}
	if state.Suppliers == nil {
		state.Suppliers = []models.Supplier{}
	}

	filled := 0
	for i := range state.Inventory {
		if state.Inventory[i].ID == "" {
			state.Inventory[i].ID = s.ids.New()
			filled++
		}
	}
	for i := range state.Orders {
		if state.Orders[i].ID == "" {
			state.Orders[i].ID = s.ids.New()
			filled++
		}
	}
	for i := range state.Suppliers {
		if state.Suppliers[i].ID == "" {
			state.Suppliers[i].ID = s.ids.New()
			filled++
		}
	}
	if filled > 0 {
		s.logger.Info("backfilled record ids", zap.Int("count", filled))
	}
}
