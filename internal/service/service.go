package service

import (
	"context"

	"farmafacil/internal/cart"
	"farmafacil/internal/catalog"
	"farmafacil/internal/coupon"
	"farmafacil/internal/model"
	"farmafacil/internal/session"
)

// AuthService defines the OTP login flow.
type AuthService interface {
	// RequestOTP validates the phone, asks the gateway to send a code and
	// records the phone as pending on the session.
	RequestOTP(ctx context.Context, sess *session.Session, phone string) (model.OTPResult, error)

	// VerifyOTP checks the code for the pending phone. A wrong code is a
	// negative result, not an error.
	VerifyOTP(ctx context.Context, sess *session.Session, code string) (model.VerifyResult, error)

	// Logout ends the session.
	Logout(ctx context.Context, sess *session.Session) error

	// CurrentUser returns the logged-in user of the session.
	CurrentUser(ctx context.Context, sess *session.Session) (*model.User, error)
}

// DashboardService defines the home screen aggregate.
type DashboardService interface {
	// Get loads promotions, recommended products and active orders in parallel.
	Get(ctx context.Context, sess *session.Session) (*model.Dashboard, error)

	Promotions(ctx context.Context) ([]model.Promotion, error)
	RecommendedProducts(ctx context.Context) ([]model.Product, error)
}

// OrderService defines order history operations.
type OrderService interface {
	// List returns the order history newest first.
	List(ctx context.Context) ([]model.OrderSummary, error)

	// GetByID returns the detail view of an order.
	GetByID(ctx context.Context, id string) (*model.OrderDetail, error)
}

// CouponService defines coupon wallet operations.
type CouponService interface {
	// Wallet returns the coupons partitioned into new, active and expired.
	Wallet(ctx context.Context) (coupon.Wallet, error)

	// Lookup finds a coupon by code, ignoring case and surrounding spaces.
	Lookup(ctx context.Context, code string) (*model.Coupon, error)
}

// AssistantService defines the chat operations.
type AssistantService interface {
	QuickActions() []model.QuickAction

	// Conversation returns the session conversation, opening it with the
	// welcome message when it is empty.
	Conversation(ctx context.Context, sess *session.Session) ([]model.ChatMessage, error)

	// Send appends the user message and the assistant reply to the conversation.
	Send(ctx context.Context, sess *session.Session, req model.AssistantRequest) (*AssistantReply, error)
}

// KioskService defines the catalogue and cart operations of a pharmacy kiosk.
type KioskService interface {
	GetPharmacy(ctx context.Context, id string) (*model.Pharmacy, error)

	// Browse filters the pharmacy catalogue.
	Browse(ctx context.Context, pharmacyID string, q CatalogQuery) (*CatalogPage, error)

	Cart(ctx context.Context, sess *session.Session, pharmacyID string) (cart.View, error)
	AddToCart(ctx context.Context, sess *session.Session, pharmacyID, productID string) (cart.View, error)
	Submit(ctx context.Context, sess *session.Session, pharmacyID string, mode cart.Mode) (cart.View, error)

	// Reset returns a submitted counter cart to editing.
	Reset(ctx context.Context, sess *session.Session, pharmacyID string) (cart.View, error)
}

// CatalogQuery is a catalogue search.
type CatalogQuery struct {
	Search   string
	Category string
	Kiosk    bool
}

// CatalogPage is the catalogue screen of a pharmacy.
type CatalogPage struct {
	Pharmacy *model.Pharmacy `json:"pharmacy"`
	catalog.View
	Actions []cart.Action `json:"actions,omitempty"`
}

// AssistantReply is the assistant answer plus the messages it appended.
type AssistantReply struct {
	model.AssistantResponse
	Rule     string              `json:"rule"`
	Messages []model.ChatMessage `json:"messages"`
}
