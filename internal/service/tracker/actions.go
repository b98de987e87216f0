package tracker

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// ActionKind names a row-level action rendered as a button or inline form.
type ActionKind string

const (
	ActionAdjustStock    ActionKind = "inventory.adjust"
	ActionRemoveItem     ActionKind = "inventory.remove"
	ActionCycleStatus    ActionKind = "order.cycle"
	ActionRemoveOrder    ActionKind = "order.remove"
	ActionRemoveSupplier ActionKind = "supplier.remove"
)

// ActionKinds lists every row action the views can emit.
func ActionKinds() []ActionKind {
	return []ActionKind{
		ActionAdjustStock,
		ActionRemoveItem,
		ActionCycleStatus,
		ActionRemoveOrder,
		ActionRemoveSupplier,
	}
}

// Action is a row action targeting one record. Amount is only read by
// ActionAdjustStock.
type Action struct {
	Kind   ActionKind
	ID     string
	Amount string
}

type actionHandler func(ctx context.Context, a Action) error

// Dispatch routes a row action to its handler.
func (t *Tracker) Dispatch(ctx context.Context, a Action) error {
	handler, ok := t.actions[a.Kind]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Kind)
	}
	if a.ID == "" {
		return ErrRecordNotFound
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return handler(ctx, a)
}

func (t *Tracker) actionTable() (map[ActionKind]actionHandler, error) {
	table := map[ActionKind]actionHandler{
		ActionAdjustStock: func(ctx context.Context, a Action) error {
			_, err := t.adjustStock(ctx, a.ID, a.Amount)
			return err
		},
		ActionRemoveItem: func(ctx context.Context, a Action) error {
			_, err := t.removeItem(ctx, a.ID)
			return err
		},
		ActionCycleStatus: func(ctx context.Context, a Action) error {
			_, err := t.cycleOrderStatus(ctx, a.ID)
			return err
		},
		ActionRemoveOrder: func(ctx context.Context, a Action) error {
			_, err := t.removeOrder(ctx, a.ID)
			return err
		},
		ActionRemoveSupplier: func(ctx context.Context, a Action) error {
			_, err := t.removeSupplier(ctx, a.ID)
			return err
		},
	}
	if err := checkActionTable(table); err != nil {
		return nil, err
	}
	return table, nil
}

// checkActionTable ensures the table covers exactly ActionKinds.
func checkActionTable(table map[ActionKind]actionHandler) error {
	kinds := ActionKinds()
	var err error
	for _, kind := range kinds {
		if table[kind] == nil {
			err = multierr.Append(err, fmt.Errorf("no handler for action %q", kind))
		}
	}
	if len(table) != len(kinds) {
		err = multierr.Append(err, fmt.Errorf("action table has %d handlers, want %d", len(table), len(kinds)))
	}
	return err
}
