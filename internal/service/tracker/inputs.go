package tracker

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
)

// ItemInput is the raw inventory form. Stock and Price are parsed by the tracker.
type ItemInput struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Stock    string `form:"stock"`
	Price    string `form:"price"`
}

// OrderInput is the raw order form.
type OrderInput struct {
	Name     string `form:"name"`
	Owner    string `form:"owner"`
	Deadline string `form:"deadline"`
	Status   string `form:"status"`
}

// SupplierInput is the raw supplier form.
type SupplierInput struct {
	Name    string `form:"name"`
	Contact string `form:"contact"`
	Phone   string `form:"phone"`
	Items   string `form:"items"`
}

type itemFields struct {
	Name     string  `validate:"required"`
	Category string  `validate:"required"`
	Stock    int     `validate:"gte=0"`
	Price    float64 `validate:"gte=0"`
}

type orderFields struct {
	Name     string `validate:"required"`
	Owner    string `validate:"required"`
	Deadline string `validate:"required"`
}

type supplierFields struct {
	Name    string `validate:"required"`
	Contact string `validate:"required"`
	Phone   string `validate:"required"`
	Items   string `validate:"required"`
}

func (t *Tracker) parseItem(in ItemInput) (models.InventoryItem, error) {
	stock, err := strconv.Atoi(strings.TrimSpace(in.Stock))
	if err != nil {
		return models.InventoryItem{}, &ValidationError{Message: msgCheckInput, Err: err}
	}
	price, err := parseNumber(in.Price)
	if err != nil {
		return models.InventoryItem{}, &ValidationError{Message: msgCheckInput, Err: err}
	}

	fields := itemFields{
		Name:     strings.TrimSpace(in.Name),
		Category: strings.TrimSpace(in.Category),
		Stock:    stock,
		Price:    price,
	}
	if err := t.validate.Struct(fields); err != nil {
		return models.InventoryItem{}, &ValidationError{Message: msgCheckInput, Err: err}
	}

	return models.InventoryItem{
		Name:     fields.Name,
		Category: fields.Category,
		Stock:    fields.Stock,
		Price:    fields.Price,
	}, nil
}

func (t *Tracker) parseOrder(in OrderInput) (models.Order, error) {
	fields := orderFields{
		Name:     strings.TrimSpace(in.Name),
		Owner:    strings.TrimSpace(in.Owner),
		Deadline: strings.TrimSpace(in.Deadline),
	}
	if err := t.validate.Struct(fields); err != nil {
		return models.Order{}, &ValidationError{Message: msgFillAll, Err: err}
	}

	status := models.OrderStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		status = models.StatusInProgress
	}

	return models.Order{
		Name:     fields.Name,
		Owner:    fields.Owner,
		Deadline: fields.Deadline,
		Status:   status,
	}, nil
}

func (t *Tracker) parseSupplier(in SupplierInput) (models.Supplier, error) {
	fields := supplierFields{
		Name:    strings.TrimSpace(in.Name),
		Contact: strings.TrimSpace(in.Contact),
		Phone:   strings.TrimSpace(in.Phone),
		Items:   strings.TrimSpace(in.Items),
	}
	if err := t.validate.Struct(fields); err != nil {
		return models.Supplier{}, &ValidationError{Message: msgFillAll, Err: err}
	}

	return models.Supplier{
		Name:    fields.Name,
		Contact: fields.Contact,
		Phone:   fields.Phone,
		Items:   fields.Items,
	}, nil
}

// parseAmount reads a signed stock delta such as "+50" or "-20".
func parseAmount(raw string) (int, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Message: msgEnterNumber, Err: err}
	}
	return amount, nil
}

func parseNumber(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}
