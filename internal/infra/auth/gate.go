package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
)

// Capability names understood by HasCapability. The admin flag is only
// reachable through these, so a real role system can replace the
// single-address check without touching callers.
const (
	CapabilityManageLeads = "manage_leads"
)

// Result is the uniform outcome shape every auth action returns.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// IdentityProvider is the slice of the provider client the gate uses.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*identity.Session, error)
	Register(ctx context.Context, email, password, displayName string) (*identity.Session, error)
	OAuthSignIn(ctx context.Context, provider, code string) (*identity.Session, error)
	SendPhoneCode(ctx context.Context, phone string) (string, error)
	VerifyPhoneCode(ctx context.Context, sessionID, code string) (*identity.Session, error)
	Lookup(ctx context.Context, token string) (*identity.Viewer, error)
	SignOut(ctx context.Context, token string) error
}

// Gate owns the cached viewer state. Everything else reads it; only the
// session transitions below write it.
type Gate struct {
	provider   IdentityProvider
	adminEmail string

	mu     sync.RWMutex
	viewer *identity.Viewer
	token  string
}

func NewGate(provider IdentityProvider, adminEmail string) *Gate {
	return &Gate{
		provider:   provider,
		adminEmail: adminEmail,
	}
}

// Resume re-establishes a session from a stored token, waiting at most
// initWindow. If the provider does not answer in time the viewer is
// treated as anonymous.
func (g *Gate) Resume(ctx context.Context, token string, initWindow time.Duration) {
	if token == "" {
		g.setSession(nil, "")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, initWindow)
	defer cancel()

	viewer, err := g.provider.Lookup(ctx, token)
	if err != nil {
		log.Printf("[auth] session resume failed, treating as anonymous: %v", err)
		g.setSession(nil, "")
		return
	}

	g.setSession(viewer, token)
}

func (g *Gate) Login(ctx context.Context, email, password string) Result {
	session, err := g.provider.SignIn(ctx, email, password)
	if err != nil {
		return failure("login", err)
	}

	g.setSession(&session.Viewer, session.Token)
	return Result{Success: true}
}

func (g *Gate) Register(ctx context.Context, email, password, displayName string) Result {
	session, err := g.provider.Register(ctx, email, password, displayName)
	if err != nil {
		return failure("register", err)
	}

	g.setSession(&session.Viewer, session.Token)
	return Result{Success: true}
}

func (g *Gate) OAuthLogin(ctx context.Context, provider, code string) Result {
	session, err := g.provider.OAuthSignIn(ctx, provider, code)
	if err != nil {
		return failure("oauth login", err)
	}

	g.setSession(&session.Viewer, session.Token)
	return Result{Success: true}
}

func (g *Gate) Logout(ctx context.Context) {
	g.mu.RLock()
	token := g.token
	g.mu.RUnlock()

	if token != "" {
		if err := g.provider.SignOut(ctx, token); err != nil {
			log.Printf("[auth] logout: %v", err)
		}
	}

	g.setSession(nil, "")
}

// VerificationSession carries the state between sending a code and
// confirming it. Callers hold it explicitly; there is no ambient
// in-progress verification.
type VerificationSession struct {
	id   string
	gate *Gate
}

func (g *Gate) StartPhoneVerification(ctx context.Context, phone string) (*VerificationSession, Result) {
	sessionID, err := g.provider.SendPhoneCode(ctx, phone)
	if err != nil {
		return nil, failure("phone login", err)
	}

	return &VerificationSession{id: sessionID, gate: g}, Result{Success: true}
}

// ResumeVerification rebuilds a session from the id handed back by the
// client between the send-code and verify-code requests.
func (g *Gate) ResumeVerification(sessionID string) *VerificationSession {
	return &VerificationSession{id: sessionID, gate: g}
}

// ID is returned to the client so it can be passed back explicitly on
// the verify call.
func (v *VerificationSession) ID() string {
	return v.id
}

func (v *VerificationSession) Verify(ctx context.Context, code string) Result {
	session, err := v.gate.provider.VerifyPhoneCode(ctx, v.id, code)
	if err != nil {
		return failure("verification", err)
	}

	v.gate.setSession(&session.Viewer, session.Token)
	return Result{Success: true}
}

// Viewer returns the cached viewer, nil when anonymous.
func (g *Gate) Viewer() *identity.Viewer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.viewer
}

func (g *Gate) IsAdmin() bool {
	return g.HasCapability(g.Viewer(), CapabilityManageLeads)
}

// HasCapability is the authorization seam. Today every capability maps
// to the configured admin address.
func (g *Gate) HasCapability(viewer *identity.Viewer, capability string) bool {
	if viewer == nil || g.adminEmail == "" {
		return false
	}

	switch capability {
	case CapabilityManageLeads:
		return strings.EqualFold(viewer.Email, g.adminEmail)
	}

	return false
}

// ResolveViewer maps a bearer token to a viewer for per-request checks.
func (g *Gate) ResolveViewer(ctx context.Context, token string) (*identity.Viewer, error) {
	if token == "" {
		return nil, nil
	}
	return g.provider.Lookup(ctx, token)
}

func (g *Gate) setSession(viewer *identity.Viewer, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.viewer = viewer
	g.token = token
}

func failure(action string, err error) Result {
	var authErr *identity.AuthError
	if errors.As(err, &authErr) {
		log.Printf("[auth] %s rejected: %s", action, authErr.Code)
		return Result{Success: false, Message: authErr.Message}
	}

	log.Printf("[auth] %s failed: %v", action, err)
	return Result{Success: false, Message: "An unexpected error occurred. Please try again"}
}
