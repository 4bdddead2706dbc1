package model

import "github.com/shopspring/decimal"

// Product represents an item in the pharmacy catalogue.
// Stock is only known for products read from a catalogue document.
type Product struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image"`
	Category    string          `json:"category" db:"category"`
	Stock       *int            `json:"stock,omitempty" db:"stock"`
}

// Promotion is a marketing banner on the dashboard. Expiry is informational only.
type Promotion struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Discount    int    `json:"discount" db:"discount"`
	Image       string `json:"image" db:"image"`
	ValidUntil  Date   `json:"validUntil" db:"valid_until"`
}

// Coupon is a discount code held by the user.
type Coupon struct {
	ID          string `json:"id" db:"id"`
	Code        string `json:"code" db:"code"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Discount    int    `json:"discount" db:"discount"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	ExpiresAt   Date   `json:"expiresAt" db:"expires_at"`
	IsNew       bool   `json:"isNew,omitempty" db:"is_new"`
}
