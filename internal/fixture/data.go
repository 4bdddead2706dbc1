// Package fixture holds the static records that stand in for a real backend,
// and the loaders for the pharmacy and catalogue documents.
package fixture

import (
	"time"

	"farmafacil/internal/model"

	"github.com/shopspring/decimal"
)

const imageParams = "?auto=compress&cs=tinysrgb&w="

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func pexels(id string, width string) string {
	return "https://images.pexels.com/photos/" + id + "/pexels-photo-" + id + ".jpeg" + imageParams + width
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

// OTPCode is the only code accepted by the mock login.
const OTPCode = "123456"

// User returns the single mock customer.
func User() model.User {
	return model.User{
		ID:                "1",
		Phone:             "+34612345678",
		Name:              "María García",
		Email:             strPtr("maria@example.com"),
		PreferredPharmacy: "Farmacia Central",
	}
}

// Promotions returns the dashboard promotions.
func Promotions() []model.Promotion {
	return []model.Promotion{
		{
			ID:          "1",
			Title:       "20% en Vitaminas",
			Description: "Descuento en toda la línea de vitaminas y suplementos",
			Discount:    20,
			Image:       pexels("3737582", "800"),
			ValidUntil:  model.NewDate(2025, time.December, 31),
		},
		{
			ID:          "2",
			Title:       "2x1 en Protectores Solares",
			Description: "Lleva dos protectores solares al precio de uno",
			Discount:    50,
			Image:       pexels("1029896", "800"),
			ValidUntil:  model.NewDate(2025, time.November, 30),
		},
		{
			ID:          "3",
			Title:       "15% en Dermocosmética",
			Description: "Descuento especial en productos de cuidado facial",
			Discount:    15,
			Image:       pexels("3762877", "800"),
			ValidUntil:  model.NewDate(2025, time.December, 15),
		},
	}
}

// RecommendedProducts returns the products featured on the dashboard.
func RecommendedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Paracetamol 500mg",
			Description: "Analgésico y antipirético",
			Price:       price("4.50"),
			Image:       pexels("3683041", "400"),
			Category:    "Medicamentos",
		},
		{
			ID:          "2",
			Name:        "Vitamina C 1000mg",
			Description: "Suplemento vitamínico",
			Price:       price("12.90"),
			Image:       pexels("3683095", "400"),
			Category:    "Vitaminas",
		},
		{
			ID:          "3",
			Name:        "Crema Hidratante Facial",
			Description: "Hidratación profunda 24h",
			Price:       price("18.50"),
			Image:       pexels("3786126", "400"),
			Category:    "Cosmética",
		},
		{
			ID:          "4",
			Name:        "Termómetro Digital",
			Description: "Lectura rápida y precisa",
			Price:       price("8.90"),
			Image:       pexels("4386466", "400"),
			Category:    "Dispositivos",
		},
	}
}

// Orders returns the order history of the mock user.
func Orders() []model.Order {
	return []model.Order{
		{
			ID:           "001",
			UserID:       "1",
			PharmacyID:   "1",
			PharmacyName: "Farmacia Central",
			Items: []model.OrderItem{
				{ProductID: "1", ProductName: "Paracetamol 500mg", Quantity: 2, Price: price("4.50")},
				{ProductID: "2", ProductName: "Vitamina C 1000mg", Quantity: 1, Price: price("12.90")},
			},
			Total:         price("21.90"),
			Status:        model.StatusPreparing,
			CreatedAt:     time.Date(2025, time.November, 16, 10, 30, 0, 0, time.UTC),
			EstimatedTime: intPtr(15),
		},
		{
			ID:           "002",
			UserID:       "1",
			PharmacyID:   "1",
			PharmacyName: "Farmacia Central",
			Items: []model.OrderItem{
				{ProductID: "3", ProductName: "Crema Hidratante Facial", Quantity: 1, Price: price("18.50")},
			},
			Total:     price("18.50"),
			Status:    model.StatusCompleted,
			CreatedAt: time.Date(2025, time.November, 10, 15, 20, 0, 0, time.UTC),
		},
		{
			ID:           "003",
			UserID:       "1",
			PharmacyID:   "1",
			PharmacyName: "Farmacia Central",
			Items: []model.OrderItem{
				{ProductID: "1", ProductName: "Paracetamol 500mg", Quantity: 1, Price: price("4.50")},
				{ProductID: "4", ProductName: "Termómetro Digital", Quantity: 1, Price: price("8.90")},
			},
			Total:     price("13.40"),
			Status:    model.StatusCompleted,
			CreatedAt: time.Date(2025, time.November, 5, 9, 15, 0, 0, time.UTC),
		},
	}
}

// Coupons returns the coupon wallet of the mock user.
func Coupons() []model.Coupon {
	return []model.Coupon{
		{
			ID:          "1",
			Code:        "BIENVENIDA10",
			Title:       "10% de descuento",
			Description: "Para tu próxima compra",
			Discount:    10,
			IsActive:    true,
			ExpiresAt:   model.NewDate(2025, time.December, 31),
			IsNew:       true,
		},
		{
			ID:          "2",
			Code:        "VERANO2025",
			Title:       "15% en protectores solares",
			Description: "Válido hasta fin de verano",
			Discount:    15,
			IsActive:    true,
			ExpiresAt:   model.NewDate(2025, time.September, 30),
		},
		{
			ID:          "3",
			Code:        "VITAPLUS",
			Title:       "20% en vitaminas",
			Description: "Cuida tu salud",
			Discount:    20,
			IsActive:    true,
			ExpiresAt:   model.NewDate(2025, time.December, 15),
		},
		{
			ID:          "4",
			Code:        "MARZO2025",
			Title:       "5% de descuento",
			Description: "Cupón usado",
			Discount:    5,
			IsActive:    false,
			ExpiresAt:   model.NewDate(2025, time.March, 31),
		},
	}
}
