package cart

import (
	"fmt"
	"math/rand/v2"
	"time"

	"farmafacil/internal/model"

	"github.com/shopspring/decimal"
)

// Mode selects how a submitted cart behaves.
type Mode string

const (
	// ModeCounter keeps the cart after submission and issues a receipt
	// number; Reset starts another order.
	ModeCounter Mode = "counter"
	// ModeKiosk empties the cart a short while after submission.
	ModeKiosk Mode = "kiosk"
)

// DefaultClearDelay is how long the kiosk confirmation stays on screen.
const DefaultClearDelay = 2 * time.Second

const (
	counterMessage = "Tu pedido ha sido enviado al mostrador."
	kioskMessage   = "Acércate al mostrador para recoger tu compra."
)

// Confirmation describes a submitted cart.
type Confirmation struct {
	Mode        Mode            `json:"mode"`
	Receipt     string          `json:"receipt,omitempty"`
	Message     string          `json:"message"`
	Units       int             `json:"units"`
	Total       decimal.Decimal `json:"total"`
	SubmittedAt time.Time       `json:"submittedAt"`
	ClearsAt    *time.Time      `json:"clearsAt,omitempty"`
}

// Action is a button of the kiosk action bar.
type Action struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// KioskActions returns the kiosk action bar.
func KioskActions() []Action {
	return []Action{
		{ID: "print", Label: "Imprimir ticket"},
		{ID: "pay_and_print", Label: "Pagar e imprimir"},
		{ID: "save", Label: "Guardar pedido"},
	}
}

// Checkout applies submissions to carts. Nothing is transmitted anywhere.
type Checkout struct {
	ClearDelay time.Duration
	Now        func() time.Time
	Receipt    func() string
}

// NewCheckout creates a Checkout with the wall clock and random receipt numbers.
func NewCheckout(clearDelay time.Duration) *Checkout {
	return &Checkout{
		ClearDelay: clearDelay,
		Now:        time.Now,
		Receipt:    RandomReceipt,
	}
}

// RandomReceipt returns a demo receipt number such as "DEMO-1275".
func RandomReceipt() string {
	return fmt.Sprintf("DEMO-%04d", rand.IntN(10000))
}

// Submit marks the cart as submitted. An empty cart cannot be submitted and a
// cart already showing its confirmation cannot be submitted again.
func (co *Checkout) Submit(c *Cart, mode Mode) (*Confirmation, error) {
	co.Refresh(c)

	if c.Submitted {
		return nil, model.ErrCartSubmitted
	}
	if c.IsEmpty() {
		return nil, model.ErrEmptyCart
	}

	now := co.Now()
	conf := &Confirmation{
		Mode:        mode,
		Units:       c.Len(),
		Total:       c.Total(),
		SubmittedAt: now,
	}

	switch mode {
	case ModeKiosk:
		clearsAt := now.Add(co.ClearDelay)
		conf.Message = kioskMessage
		conf.ClearsAt = &clearsAt
	default:
		conf.Mode = ModeCounter
		conf.Message = counterMessage
		conf.Receipt = co.Receipt()
	}

	c.Submitted = true
	c.Submission = conf

	return conf, nil
}

// Refresh clears a kiosk cart whose confirmation has been shown for the
// clear delay. It reports whether the cart was cleared.
func (co *Checkout) Refresh(c *Cart) bool {
	if !c.Submitted || c.Submission == nil || c.Submission.ClearsAt == nil {
		return false
	}
	if co.Now().Before(*c.Submission.ClearsAt) {
		return false
	}

	c.Clear()
	return true
}

// Reset leaves the confirmation screen of a counter submission and keeps the
// cart contents. Resetting a cart that is not submitted is a no-op.
func (co *Checkout) Reset(c *Cart) {
	co.Refresh(c)

	c.Submitted = false
	c.Submission = nil
}

// ParseMode maps the kiosk query flag to a Mode.
func ParseMode(kiosk bool) Mode {
	if kiosk {
		return ModeKiosk
	}
	return ModeCounter
}
