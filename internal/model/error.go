package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeInvalidPhone     = "INVALID_PHONE"
	ErrCodeInvalidOTPCode   = "INVALID_OTP_CODE"
	ErrCodeNoPendingLogin   = "NO_PENDING_LOGIN"
	ErrCodeOTPThrottled     = "OTP_THROTTLED"
	ErrCodeUnauthorised     = "UNAUTHORIZED"
	ErrCodeSessionExpired   = "SESSION_EXPIRED"
	ErrCodeProductNotFound  = "PRODUCT_NOT_FOUND"
	ErrCodePharmacyNotFound = "PHARMACY_NOT_FOUND"
	ErrCodeOrderNotFound    = "ORDER_NOT_FOUND"
	ErrCodeCouponNotFound   = "COUPON_NOT_FOUND"
	ErrCodeEmptyCart        = "EMPTY_CART"
	ErrCodeCartSubmitted    = "CART_SUBMITTED"
	ErrCodeEmptyMessage     = "EMPTY_MESSAGE"
	ErrCodeTimeout          = "TIMEOUT"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidPhone     = NewDomainError(ErrCodeInvalidPhone, "Phone number must have at least 9 characters")
	ErrInvalidOTPCode   = NewDomainError(ErrCodeInvalidOTPCode, "Verification code must have exactly 6 characters")
	ErrNoPendingLogin   = NewDomainError(ErrCodeNoPendingLogin, "No verification code has been requested for this session")
	ErrOTPThrottled     = NewDomainError(ErrCodeOTPThrottled, "A code was sent recently, please wait before requesting another")
	ErrUnauthorised     = NewDomainError(ErrCodeUnauthorised, "Login required")
	ErrSessionExpired   = NewDomainError(ErrCodeSessionExpired, "Session ended, start again")
	ErrProductNotFound  = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrPharmacyNotFound = NewDomainError(ErrCodePharmacyNotFound, "Pharmacy not found")
	ErrOrderNotFound    = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrCouponNotFound   = NewDomainError(ErrCodeCouponNotFound, "Coupon not found")
	ErrEmptyCart        = NewDomainError(ErrCodeEmptyCart, "Cart is empty")
	ErrCartSubmitted    = NewDomainError(ErrCodeCartSubmitted, "Order already sent, start a new one first")
	ErrEmptyMessage     = NewDomainError(ErrCodeEmptyMessage, "Message must not be empty")
)
