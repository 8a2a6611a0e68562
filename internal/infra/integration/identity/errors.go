package identity

// AuthError is a provider rejection translated for the person on the
// other side of the form. Code stays machine-readable for logs.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// Closed set of provider codes we know how to explain. Anything outside
// this table gets the opaque fallback, never the raw provider text.
var userMessages = map[string]string{
	"USER_NOT_FOUND":        "No account found with this email",
	"WRONG_PASSWORD":        "Incorrect password",
	"INVALID_EMAIL":         "Invalid email address",
	"USER_DISABLED":         "This account has been disabled",
	"TOO_MANY_REQUESTS":     "Too many failed attempts. Please try again later",
	"EMAIL_IN_USE":          "An account with this email already exists",
	"WEAK_PASSWORD":         "Password should be at least 6 characters",
	"OPERATION_NOT_ALLOWED": "This sign-in method is not enabled",
	"POPUP_CLOSED":          "Login popup was closed. Please try again",
	"POPUP_BLOCKED":         "Popup was blocked by your browser. Please allow popups and try again",
	"UNAUTHORIZED_DOMAIN":   "This domain is not authorized. Please contact support",
	"NETWORK_FAILURE":       "Network error. Please check your connection and try again",
	"INVALID_PHONE":         "Invalid phone number format",
	"INVALID_CODE":          "Invalid verification code. Please try again",
	"CODE_EXPIRED":          "Verification code has expired. Please request a new one",
}

const fallbackMessage = "An unexpected error occurred. Please try again"

func newAuthError(code string) *AuthError {
	msg, ok := userMessages[code]
	if !ok {
		msg = fallbackMessage
	}
	return &AuthError{Code: code, Message: msg}
}
