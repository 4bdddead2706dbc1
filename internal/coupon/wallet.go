// Package coupon organises the user's coupon wallet.
package coupon

import (
	"strings"

	"farmafacil/internal/model"
)

// Status is the wallet section a coupon belongs to.
type Status string

const (
	StatusNew     Status = "new"
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// StatusOf places a coupon in exactly one section: inactive coupons are
// expired regardless of IsNew.
func StatusOf(c model.Coupon) Status {
	switch {
	case !c.IsActive:
		return StatusExpired
	case c.IsNew:
		return StatusNew
	default:
		return StatusActive
	}
}

// Wallet is the coupons screen. Sections keep the input order and are never nil.
type Wallet struct {
	New     []model.Coupon `json:"new"`
	Active  []model.Coupon `json:"active"`
	Expired []model.Coupon `json:"expired"`
}

// Partition splits coupons into the wallet sections.
func Partition(coupons []model.Coupon) Wallet {
	w := Wallet{
		New:     []model.Coupon{},
		Active:  []model.Coupon{},
		Expired: []model.Coupon{},
	}

	for _, c := range coupons {
		switch StatusOf(c) {
		case StatusNew:
			w.New = append(w.New, c)
		case StatusActive:
			w.Active = append(w.Active, c)
		default:
			w.Expired = append(w.Expired, c)
		}
	}

	return w
}

// Len is the number of coupons in the wallet.
func (w Wallet) Len() int {
	return len(w.New) + len(w.Active) + len(w.Expired)
}

// Index looks coupons up by code, ignoring case and surrounding space.
type Index struct {
	byCode map[string]model.Coupon
}

// NewIndex builds an index over coupons. Later duplicates win.
func NewIndex(coupons []model.Coupon) *Index {
	idx := &Index{byCode: make(map[string]model.Coupon, len(coupons))}
	for _, c := range coupons {
		idx.byCode[normaliseCode(c.Code)] = c
	}
	return idx
}

// Lookup returns the coupon with the given code.
func (i *Index) Lookup(code string) (model.Coupon, bool) {
	c, ok := i.byCode[normaliseCode(code)]
	return c, ok
}

// Size returns the number of distinct codes.
func (i *Index) Size() int {
	return len(i.byCode)
}

func normaliseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
