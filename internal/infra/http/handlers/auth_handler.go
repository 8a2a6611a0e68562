package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jatinenterprises/site-backend/internal/infra/auth"
)

type AuthHandler struct {
	Gate *auth.Gate
}

func NewAuthHandler(gate *auth.Gate) *AuthHandler {
	return &AuthHandler{Gate: gate}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, auth.Result{Success: false, Message: "Invalid JSON"})
		return
	}

	writeAuthResult(w, h.Gate.Login(r.Context(), body.Email, body.Password))
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, auth.Result{Success: false, Message: "Invalid JSON"})
		return
	}

	writeAuthResult(w, h.Gate.Register(r.Context(), body.Email, body.Password, body.Name))
}

// OAuthLogin handles POST /auth/oauth.
func (h *AuthHandler) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Provider string `json:"provider"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, auth.Result{Success: false, Message: "Invalid JSON"})
		return
	}

	writeAuthResult(w, h.Gate.OAuthLogin(r.Context(), body.Provider, body.Code))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Gate.Logout(r.Context())
	writeJSON(w, http.StatusOK, auth.Result{Success: true})
}

// StartPhoneVerification handles POST /auth/phone/start. The session id
// goes back to the client and must be returned on the verify call; no
// verification state is kept server-side between the two.
func (h *AuthHandler) StartPhoneVerification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, auth.Result{Success: false, Message: "Invalid JSON"})
		return
	}

	session, result := h.Gate.StartPhoneVerification(r.Context(), body.Phone)
	if !result.Success {
		writeAuthResult(w, result)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session_id": session.ID(),
	})
}

// VerifyPhoneCode handles POST /auth/phone/verify.
func (h *AuthHandler) VerifyPhoneCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SessionID string `json:"session_id"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, auth.Result{Success: false, Message: "Invalid JSON"})
		return
	}

	if body.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, auth.Result{Success: false, Message: "No verification in progress"})
		return
	}

	session := h.Gate.ResumeVerification(body.SessionID)
	writeAuthResult(w, session.Verify(r.Context(), body.Code))
}

func writeAuthResult(w http.ResponseWriter, result auth.Result) {
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, result)
}
