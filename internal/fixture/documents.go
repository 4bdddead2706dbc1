package fixture

import (
	"context"
	"encoding/json"
	"fmt"

	"farmafacil/internal/model"

	"github.com/shopspring/decimal"
)

// pharmacyDocument is the on-disk layout of pharmacy.json.
type pharmacyDocument struct {
	ID         string `json:"farmacia_id"`
	Name       string `json:"nombre"`
	LogoURL    string `json:"logo_url"`
	Address    string `json:"direccion"`
	Phone      string `json:"telefono"`
	Hours      string `json:"horario"`
	BrandColor string `json:"color_principal"`
}

// productDocument is one entry of catalog.json.
type productDocument struct {
	ID       string          `json:"id"`
	Name     string          `json:"nombre"`
	Price    decimal.Decimal `json:"precio"`
	Stock    *int            `json:"stock"`
	Category string          `json:"categoria"`
	Image    string          `json:"imagen"`
}

// LoadPharmacy reads and validates the pharmacy profile document.
func LoadPharmacy(ctx context.Context, loader Loader, path string) (*model.Pharmacy, error) {
	data, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load pharmacy document: %w", err)
	}

	return ParsePharmacy(data)
}

// ParsePharmacy decodes a pharmacy document.
func ParsePharmacy(data []byte) (*model.Pharmacy, error) {
	var doc pharmacyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode pharmacy document: %w", err)
	}

	if doc.ID == "" {
		return nil, fmt.Errorf("pharmacy document: farmacia_id is required")
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("pharmacy document: nombre is required")
	}

	return &model.Pharmacy{
		ID:         doc.ID,
		Name:       doc.Name,
		LogoURL:    doc.LogoURL,
		Address:    doc.Address,
		Phone:      doc.Phone,
		Hours:      doc.Hours,
		BrandColor: doc.BrandColor,
	}, nil
}

// LoadCatalog reads and validates the product catalogue document.
func LoadCatalog(ctx context.Context, loader Loader, path string) ([]model.Product, error) {
	data, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog document: %w", err)
	}

	return ParseCatalog(data)
}

// ParseCatalog decodes a catalogue document, keeping document order.
func ParseCatalog(data []byte) ([]model.Product, error) {
	var docs []productDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode catalog document: %w", err)
	}

	products := make([]model.Product, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog document: item %d: id is required", i)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("catalog document: duplicate product id %s", d.ID)
		}
		seen[d.ID] = struct{}{}
		if d.Price.IsNegative() {
			return nil, fmt.Errorf("catalog document: product %s: negative price", d.ID)
		}

		products = append(products, model.Product{
			ID:       d.ID,
			Name:     d.Name,
			Price:    d.Price,
			Image:    d.Image,
			Category: d.Category,
			Stock:    d.Stock,
		})
	}

	return products, nil
}
