package identity

// Viewer is the provider's account record, trimmed to what the site uses.
type Viewer struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// Session is an authenticated viewer plus the bearer token that proves it.
type Session struct {
	Token  string `json:"token"`
	Viewer Viewer `json:"viewer"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type oauthRequest struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
}

type phoneCodeRequest struct {
	Phone string `json:"phone"`
}

type phoneCodeResponse struct {
	SessionID string `json:"session_id"`
}

type phoneVerifyRequest struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
