package model

// User is the customer logged in through the OTP flow.
type User struct {
	ID                string  `json:"id" db:"id"`
	Phone             string  `json:"phone" db:"phone"`
	Name              string  `json:"name" db:"name"`
	Email             *string `json:"email,omitempty" db:"email"`
	PreferredPharmacy string  `json:"preferredPharmacy" db:"preferred_pharmacy"`
}

// Pharmacy is the profile shown in the kiosk header.
type Pharmacy struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	LogoURL    string `json:"logoUrl"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Hours      string `json:"hours"`
	BrandColor string `json:"brandColor"`
}
