package fixture

import (
	"context"
	"fmt"

	"farmafacil/internal/model"
)

// Dataset is everything the mock backend serves.
type Dataset struct {
	User        model.User
	Pharmacy    model.Pharmacy
	Catalog     []model.Product
	Promotions  []model.Promotion
	Recommended []model.Product
	Orders      []model.Order
	Coupons     []model.Coupon
}

// Paths locates the pharmacy and catalogue documents for a Loader.
type Paths struct {
	Pharmacy string
	Catalog  string
}

// Load combines the static records with the pharmacy and catalogue documents.
func Load(ctx context.Context, loader Loader, paths Paths) (*Dataset, error) {
	pharmacy, err := LoadPharmacy(ctx, loader, paths.Pharmacy)
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(ctx, loader, paths.Catalog)
	if err != nil {
		return nil, err
	}

	data := New(*pharmacy, catalog)
	if err := data.Validate(); err != nil {
		return nil, err
	}

	return data, nil
}

// New builds a dataset from the static records plus the given pharmacy and catalogue.
func New(pharmacy model.Pharmacy, catalog []model.Product) *Dataset {
	return &Dataset{
		User:        User(),
		Pharmacy:    pharmacy,
		Catalog:     catalog,
		Promotions:  Promotions(),
		Recommended: RecommendedProducts(),
		Orders:      Orders(),
		Coupons:     Coupons(),
	}
}

// Validate checks that every order has a known status, carries an estimate
// only while being prepared and has a total equal to the sum of its lines.
func (d *Dataset) Validate() error {
	for _, o := range d.Orders {
		if !o.Status.Valid() {
			return fmt.Errorf("order %s: unknown status %q", o.ID, o.Status)
		}
		if o.EstimatedTime != nil && o.Status != model.StatusPreparing {
			return fmt.Errorf("order %s: estimated time set on %s order", o.ID, o.Status)
		}
		if !o.Total.Equal(o.ComputedTotal()) {
			return fmt.Errorf("order %s: total %s does not match items %s", o.ID, o.Total, o.ComputedTotal())
		}
		if len(o.Items) == 0 {
			return fmt.Errorf("order %s has no items", o.ID)
		}
	}

	seen := make(map[string]struct{}, len(d.Coupons))
	for _, c := range d.Coupons {
		if _, dup := seen[c.Code]; dup {
			return fmt.Errorf("duplicate coupon code %s", c.Code)
		}
		seen[c.Code] = struct{}{}
	}

	return nil
}

// DemoPharmacy is used when no pharmacy document is configured.
func DemoPharmacy() model.Pharmacy {
	return model.Pharmacy{
		ID:         "F012-DEMO",
		Name:       "Farmacia Central",
		LogoURL:    "https://images.pexels.com/photos/5910953/pexels-photo-5910953.jpeg" + imageParams + "200",
		Address:    "Calle Mayor 12, 28013 Madrid",
		Phone:      "+34 910 000 000",
		Hours:      "L-V 9:00-21:00, S 10:00-14:00",
		BrandColor: "#1E7F76",
	}
}
