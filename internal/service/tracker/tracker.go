package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
	"github.com/mamadbah2/foodtracker/internal/store"
)

// Notifier displays a transient message to the user.
type Notifier interface {
	Show(message string)
}

// Tracker translates user actions into store mutations. Every mutation
// validates input, changes the state, persists it and notifies the user.
type Tracker struct {
	mu       sync.Mutex
	store    *store.Store
	notifier Notifier
	validate *validator.Validate
	logger   *zap.Logger
	actions  map[ActionKind]actionHandler
}

// NewTracker wires a tracker around a loaded store.
func NewTracker(st *store.Store, notifier Notifier, logger *zap.Logger) (*Tracker, error) {
	if st == nil {
		return nil, errors.New("store must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}

	t := &Tracker{
		store:    st,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
	actions, err := t.actionTable()
	if err != nil {
		return nil, err
	}
	t.actions = actions
	return t, nil
}

// Snapshot returns a copy of the current state for rendering and reporting.
func (t *Tracker) Snapshot() models.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.State().Clone()
}

// Orders returns the orders matching filter without touching the store.
func (t *Tracker) Orders(filter string) []models.Order {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.State().FilterOrders(filter)
}

// AddItem validates the form and puts a new product at the top of the inventory.
func (t *Tracker) AddItem(ctx context.Context, in ItemInput) (models.InventoryItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, err := t.parseItem(in)
	if err != nil {
		return models.InventoryItem{}, t.reject(err)
	}
	item.ID = t.store.NewID()

	t.store.State().PrependItem(item)
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s was added to inventory.", item.Name))
	return item, nil
}

// AdjustStock applies a signed delta to a product's stock. A delta that would
// make stock negative is rejected and nothing changes.
func (t *Tracker) AdjustStock(ctx context.Context, id, amount string) (models.InventoryItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.adjustStock(ctx, id, amount)
}

// RemoveItem deletes a product by id.
func (t *Tracker) RemoveItem(ctx context.Context, id string) (models.InventoryItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeItem(ctx, id)
}

// AddOrder validates the form and puts a new order at the top of the list.
func (t *Tracker) AddOrder(ctx context.Context, in OrderInput) (models.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	order, err := t.parseOrder(in)
	if err != nil {
		return models.Order{}, t.reject(err)
	}
	order.ID = t.store.NewID()

	t.store.State().PrependOrder(order)
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s order was registered.", order.Name))
	return order, nil
}

// CycleOrderStatus moves an order to the next status.
func (t *Tracker) CycleOrderStatus(ctx context.Context, id string) (models.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cycleOrderStatus(ctx, id)
}

// RemoveOrder deletes an order by id.
func (t *Tracker) RemoveOrder(ctx context.Context, id string) (models.Order, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeOrder(ctx, id)
}

// AddSupplier validates the form and puts a new supplier at the top of the list.
func (t *Tracker) AddSupplier(ctx context.Context, in SupplierInput) (models.Supplier, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	supplier, err := t.parseSupplier(in)
	if err != nil {
		return models.Supplier{}, t.reject(err)
	}
	supplier.ID = t.store.NewID()

	t.store.State().PrependSupplier(supplier)
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s was added to suppliers.", supplier.Name))
	return supplier, nil
}

// RemoveSupplier deletes a supplier by id.
func (t *Tracker) RemoveSupplier(ctx context.Context, id string) (models.Supplier, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeSupplier(ctx, id)
}

func (t *Tracker) adjustStock(ctx context.Context, id, raw string) (models.InventoryItem, error) {
	item := t.store.State().FindItem(id)
	if item == nil {
		return models.InventoryItem{}, ErrRecordNotFound
	}

	amount, err := parseAmount(raw)
	if err != nil {
		return *item, t.reject(err)
	}

	if amount > 0 && item.Stock > math.MaxInt-amount {
		return *item, t.reject(&ValidationError{Message: msgStockTooLarge})
	}
	next := item.Stock + amount
	if next < 0 {
		return *item, t.reject(&ValidationError{Message: msgStockNegative})
	}

	item.Stock = next
	t.store.Save(ctx)

	direction, delta := "increased", amount
	if amount < 0 {
		direction, delta = "decreased", -amount
	}
	t.notify(fmt.Sprintf("%s stock %s by %d.", item.Name, direction, delta))
	return *item, nil
}

func (t *Tracker) removeItem(ctx context.Context, id string) (models.InventoryItem, error) {
	removed, ok := t.store.State().RemoveItem(id)
	if !ok {
		return models.InventoryItem{}, ErrRecordNotFound
	}
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s was removed from inventory.", removed.Name))
	return removed, nil
}

func (t *Tracker) cycleOrderStatus(ctx context.Context, id string) (models.Order, error) {
	order := t.store.State().FindOrder(id)
	if order == nil {
		return models.Order{}, ErrRecordNotFound
	}
	order.Status = order.Status.Next()
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s status changed to '%s'.", order.Name, order.Status))
	return *order, nil
}

func (t *Tracker) removeOrder(ctx context.Context, id string) (models.Order, error) {
	removed, ok := t.store.State().RemoveOrder(id)
	if !ok {
		return models.Order{}, ErrRecordNotFound
	}
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s order was removed.", removed.Name))
	return removed, nil
}

func (t *Tracker) removeSupplier(ctx context.Context, id string) (models.Supplier, error) {
	removed, ok := t.store.State().RemoveSupplier(id)
	if !ok {
		return models.Supplier{}, ErrRecordNotFound
	}
	t.store.Save(ctx)
	t.notify(fmt.Sprintf("%s was removed from suppliers.", removed.Name))
	return removed, nil
}

// reject shows the validation message and hands the error back to the caller.
func (t *Tracker) reject(err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.logger.Debug("input rejected", zap.String("message", verr.Message), zap.Error(verr.Err))
		t.notifier.Show(verr.Message)
	}
	return err
}

func (t *Tracker) notify(message string) {
	t.logger.Info("state changed", zap.String("message", message))
	t.notifier.Show(message)
}

type nopNotifier struct{}

func (nopNotifier) Show(string) {}
