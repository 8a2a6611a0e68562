package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/jatinenterprises/site-backend/internal/infra/http/middleware"
	"github.com/jatinenterprises/site-backend/internal/usecase"
)

type ContactHandler struct {
	submitter   *usecase.SubmitContactUseCase
	rateLimiter *RateLimiter
}

func NewContactHandler(submitter *usecase.SubmitContactUseCase) *ContactHandler {
	return &ContactHandler{
		submitter:   submitter,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

type submitContactResponse struct {
	Success   bool   `json:"success"`
	Level     string `json:"level,omitempty"`
	Message   string `json:"message,omitempty"`
	ClearForm bool   `json:"clear_form"`
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, submitContactResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var input usecase.SubmitContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, submitContactResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	if input.FormToken == "" {
		input.FormToken = clientIP
	}

	output, err := h.submitter.Execute(ctx, input)
	if err != nil {
		status, msg := submitFailure(err)
		writeJSON(w, status, submitContactResponse{
			Success:   false,
			Level:     "error",
			Message:   msg,
			ClearForm: false,
		})
		return
	}

	middleware.RecordLeadCaptured("contact_form")
	if output.Level == usecase.LevelWarning {
		middleware.RecordNotificationFailure()
	}

	writeJSON(w, http.StatusCreated, submitContactResponse{
		Success:   true,
		Level:     output.Level,
		Message:   output.Message,
		ClearForm: output.ClearForm,
	})
}

func submitFailure(err error) (int, string) {
	if errors.Is(err, usecase.ErrSubmissionInFlight) {
		return http.StatusConflict, "Your message is already being sent."
	}

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		return http.StatusBadRequest, domainErr.Message
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		return http.StatusServiceUnavailable, techErr.Message
	}

	return http.StatusInternalServerError, "Failed to send message. Please try again."
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
