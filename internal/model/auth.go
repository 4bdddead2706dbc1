package model

// OTPRequest is the payload for requesting a login code.
type OTPRequest struct {
	Phone string `json:"phone"`
}

// OTPResult is returned once a code has been "sent".
type OTPResult struct {
	Success bool `json:"success"`
}

// VerifyRequest is the payload for checking a login code.
type VerifyRequest struct {
	Code string `json:"code"`
}

// VerifyResult carries the user on success. A wrong code is a negative
// result, not an error.
type VerifyResult struct {
	Success bool  `json:"success"`
	User    *User `json:"user,omitempty"`
}

// Dashboard aggregates the data shown on the home screen.
type Dashboard struct {
	User         *User          `json:"user"`
	Promotions   []Promotion    `json:"promotions"`
	Products     []Product      `json:"products"`
	ActiveOrders []OrderSummary `json:"activeOrders"`
}
