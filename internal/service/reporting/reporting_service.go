package reporting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
	repo "github.com/mamadbah2/foodtracker/internal/repository/sheets"
)

const (
	dateLayout         = "2006-01-02"
	snapshotWriteRange = "Snapshots!A:F"
)

// Summary is a point-in-time digest of the tracker state.
type Summary struct {
	Date            time.Time                  `json:"date"`
	ItemCount       int                        `json:"item_count"`
	InventoryValue  float64                    `json:"inventory_value"`
	LowStock        []models.InventoryItem     `json:"low_stock"`
	OrdersByStatus  map[models.OrderStatus]int `json:"orders_by_status"`
	OverdueOrders   []models.Order             `json:"overdue_orders"`
	SupplierCount   int                        `json:"supplier_count"`
	PreviousValue   *float64                   `json:"previous_value,omitempty"`
	LowStockCeiling int                        `json:"low_stock_threshold"`
}

// Service exposes lightweight analytics over the tracker state.
type Service struct {
	repo      repo.Repository
	threshold int
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. repository may be nil
// when Sheets export is not configured.
func NewService(repository repo.Repository, lowStockThreshold int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, threshold: lowStockThreshold, logger: logger}
}

// ExportEnabled reports whether a Sheets repository is attached.
func (s *Service) ExportEnabled() bool {
	return s.repo != nil
}

// Summarize aggregates state as of now.
func (s *Service) Summarize(state models.State, now time.Time) Summary {
	summary := Summary{
		Date:            now,
		ItemCount:       len(state.Inventory),
		OrdersByStatus:  make(map[models.OrderStatus]int),
		SupplierCount:   len(state.Suppliers),
		LowStockCeiling: s.threshold,
	}

	for _, item := range state.Inventory {
		summary.InventoryValue += item.StockValue()
		if item.Stock <= s.threshold {
			summary.LowStock = append(summary.LowStock, item)
		}
	}

	today := now.Format(dateLayout)
	for _, order := range state.Orders {
		summary.OrdersByStatus[order.Status]++
		// YYYY-MM-DD compares correctly as a string
		if order.Status != models.StatusShipped && order.Deadline != "" && order.Deadline < today {
			summary.OverdueOrders = append(summary.OverdueOrders, order)
		}
	}

	return summary
}

// Digest renders the summary as a short multi-line message.
func (s *Service) Digest(summary Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Daily tracker digest (%s)\n", summary.Date.Format(dateLayout))
	fmt.Fprintf(&b, "Inventory: %d products worth %.0f.", summary.ItemCount, summary.InventoryValue)
	if summary.PreviousValue != nil {
		fmt.Fprintf(&b, " Change since last snapshot: %+.0f.", summary.InventoryValue-*summary.PreviousValue)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Orders: %d in progress, %d shipped, %d on hold.\n",
		summary.OrdersByStatus[models.StatusInProgress],
		summary.OrdersByStatus[models.StatusShipped],
		summary.OrdersByStatus[models.StatusOnHold])

	if len(summary.LowStock) == 0 {
		fmt.Fprintf(&b, "Low stock (<= %d): none.\n", summary.LowStockCeiling)
	} else {
		names := make([]string, 0, len(summary.LowStock))
		for _, item := range summary.LowStock {
			names = append(names, fmt.Sprintf("%s (%d)", item.Name, item.Stock))
		}
		fmt.Fprintf(&b, "Low stock (<= %d): %s.\n", summary.LowStockCeiling, strings.Join(names, ", "))
	}

	if len(summary.OverdueOrders) > 0 {
		names := make([]string, 0, len(summary.OverdueOrders))
		for _, order := range summary.OverdueOrders {
			names = append(names, fmt.Sprintf("%s (due %s)", order.Name, order.Deadline))
		}
		fmt.Fprintf(&b, "Overdue: %s.\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "Suppliers: %d.", summary.SupplierCount)
	return b.String()
}

// AttachPreviousValue looks up the inventory value of the latest exported
// snapshot. Lookup failures are logged and leave the summary unchanged.
func (s *Service) AttachPreviousValue(ctx context.Context, summary *Summary) {
	if s.repo == nil {
		return
	}
	rows, err := s.repo.ReadRange(ctx, snapshotWriteRange)
	if err != nil {
		s.logger.Debug("previous snapshot lookup failed", zap.Error(err))
		return
	}

	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if len(row) < 3 {
			continue
		}
		value, err := parseFloat(row[2])
		if err != nil {
			s.logger.Debug("skip snapshot row with invalid value", zap.Any("value", row[2]), zap.Error(err))
			continue
		}
		summary.PreviousValue = &value
		return
	}
}

// ExportSnapshot appends the summary as one row: date, products, inventory
// value, open orders, overdue orders, suppliers.
func (s *Service) ExportSnapshot(ctx context.Context, summary Summary) error {
	if s.repo == nil {
		return fmt.Errorf("sheets export is not configured")
	}

	open := summary.OrdersByStatus[models.StatusInProgress] + summary.OrdersByStatus[models.StatusOnHold]
	values := []interface{}{
		summary.Date.Format(dateLayout),
		summary.ItemCount,
		summary.InventoryValue,
		open,
		len(summary.OverdueOrders),
		summary.SupplierCount,
	}
	if err := s.repo.AppendRow(ctx, snapshotWriteRange, values); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	s.logger.Info("snapshot exported", zap.String("date", summary.Date.Format(dateLayout)), zap.Float64("inventory_value", summary.InventoryValue))
	return nil
}

func parseFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		return strconv.ParseFloat(cleaned, 64)
	default:
		return 0, fmt.Errorf("unsupported cell type %T", value)
	}
}
