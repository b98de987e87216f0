package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer turns tracker state into HTML. It holds no state of its own.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: tpl}, nil
}

// PageData is everything the full page needs. Orders holds the orders
// already matching Filter.
type PageData struct {
	State     models.State
	Orders    []models.Order
	Filter    string
	Notice    string
	NoticeTTL time.Duration
}

type inventoryRow struct {
	ID, Name, Category, Stock, Price, Value string
}

type orderRow struct {
	ID, Name, Owner, Deadline, StatusLabel string
	Status                                 models.OrderStatus
}

type supplierRow struct {
	ID, Name, Contact, Phone, Items string
}

type statusOption struct {
	Value, Label string
}

type inventoryTable struct {
	Rows   []inventoryRow
	Filter string
}

type orderTable struct {
	Rows   []orderRow
	Filter string
}

type supplierTable struct {
	Rows   []supplierRow
	Filter string
}

type pageModel struct {
	Inventory inventoryTable
	Orders    orderTable
	Suppliers supplierTable
	Statuses  []statusOption
	Notice    string
	NoticeTTL int64
}

// Page renders the whole tracker page.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	statuses := models.OrderStatuses()
	options := make([]statusOption, 0, len(statuses))
	for _, s := range statuses {
		options = append(options, statusOption{Value: string(s), Label: s.Label()})
	}

	model := pageModel{
		Inventory: buildInventory(data.State.Inventory),
		Orders:    buildOrders(data.Orders, data.Filter),
		Suppliers: buildSuppliers(data.State.Suppliers),
		Statuses:  options,
		Notice:    data.Notice,
		NoticeTTL: data.NoticeTTL.Milliseconds(),
	}
	model.Inventory.Filter = model.Orders.Filter
	model.Suppliers.Filter = model.Orders.Filter
	return r.templates.ExecuteTemplate(w, "index", model)
}

func buildInventory(items []models.InventoryItem) inventoryTable {
	rows := make([]inventoryRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, inventoryRow{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Stock:    formatCount(item.Stock),
			Price:    formatAmount(item.Price),
			Value:    formatAmount(item.StockValue()),
		})
	}
	return inventoryTable{Rows: rows}
}

func buildOrders(orders []models.Order, filter string) orderTable {
	if filter == "" {
		filter = models.OrderFilterAll
	}
	rows := make([]orderRow, 0, len(orders))
	for _, order := range orders {
		rows = append(rows, orderRow{
			ID:          order.ID,
			Name:        order.Name,
			Owner:       order.Owner,
			Deadline:    formatDeadline(order.Deadline),
			Status:      order.Status,
			StatusLabel: order.Status.Label(),
		})
	}
	return orderTable{Rows: rows, Filter: filter}
}

func buildSuppliers(suppliers []models.Supplier) supplierTable {
	rows := make([]supplierRow, 0, len(suppliers))
	for _, supplier := range suppliers {
		rows = append(rows, supplierRow{
			ID:      supplier.ID,
			Name:    supplier.Name,
			Contact: supplier.Contact,
			Phone:   supplier.Phone,
			Items:   supplier.Items,
		})
	}
	return supplierTable{Rows: rows}
}
