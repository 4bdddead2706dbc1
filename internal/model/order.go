package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a pharmacy order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

var statusLabels = map[OrderStatus]string{
	StatusPending:   "Pendiente",
	StatusPreparing: "Preparando",
	StatusReady:     "Listo",
	StatusCompleted: "Completado",
	StatusCancelled: "Cancelado",
}

// Label returns the display label, or the raw status when it is unknown.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Active reports whether the order is still being handled by the pharmacy.
func (s OrderStatus) Active() bool {
	return s == StatusPending || s == StatusPreparing
}

// ProgressStep is one stage of the order tracker.
type ProgressStep struct {
	Status    OrderStatus `json:"status"`
	Label     string      `json:"label"`
	Completed bool        `json:"completed"`
	Current   bool        `json:"current"`
}

var progressSteps = []struct {
	status OrderStatus
	label  string
}{
	{StatusPending, "Recibido"},
	{StatusPreparing, "Preparando"},
	{StatusReady, "Listo"},
	{StatusCompleted, "Entregado"},
}

// Progress returns the tracker steps for the status. A cancelled or unknown
// status marks no step as completed.
func (s OrderStatus) Progress() []ProgressStep {
	current := -1
	for i, step := range progressSteps {
		if step.status == s {
			current = i
			break
		}
	}

	steps := make([]ProgressStep, len(progressSteps))
	for i, step := range progressSteps {
		steps[i] = ProgressStep{
			Status:    step.status,
			Label:     step.label,
			Completed: i <= current,
			Current:   i == current,
		}
	}
	return steps
}

// Order represents a customer order placed at a pharmacy.
type Order struct {
	ID            string          `json:"id" db:"id"`
	UserID        string          `json:"userId" db:"user_id"`
	PharmacyID    string          `json:"pharmacyId" db:"pharmacy_id"`
	PharmacyName  string          `json:"pharmacyName" db:"pharmacy_name"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total" db:"total"`
	Status        OrderStatus     `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	EstimatedTime *int            `json:"estimatedTime,omitempty" db:"estimated_time"`
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ProductID   string          `json:"productId" db:"product_id"`
	ProductName string          `json:"productName" db:"product_name"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Price       decimal.Decimal `json:"price" db:"price"`
}

// Subtotal returns quantity × unit price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ComputedTotal returns the sum of the item subtotals. Fixture totals are
// stored, not derived, so this is what Total is checked against.
func (o *Order) ComputedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// UnitCount returns the number of units across all items.
func (o *Order) UnitCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// OrderDetail is the order as rendered on the detail screen.
type OrderDetail struct {
	Order
	StatusLabel string         `json:"statusLabel"`
	Steps       []ProgressStep `json:"steps"`
	ContactURL  string         `json:"contactUrl"`
	// ShowEstimate is true only while the order is being prepared.
	ShowEstimate bool `json:"showEstimate"`
}

// OrderSummary is the order as listed on the history and dashboard screens.
type OrderSummary struct {
	ID           string          `json:"id"`
	PharmacyName string          `json:"pharmacyName"`
	Status       OrderStatus     `json:"status"`
	StatusLabel  string          `json:"statusLabel"`
	ItemCount    int             `json:"itemCount"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Summary returns the listing view of the order.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		PharmacyName: o.PharmacyName,
		Status:       o.Status,
		StatusLabel:  o.Status.Label(),
		ItemCount:    len(o.Items),
		Total:        o.Total,
		CreatedAt:    o.CreatedAt,
	}
}
