package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jatinenterprises/site-backend/internal/infra/integration/identity"
)

// stubProvider answers every call from canned fields.
type stubProvider struct {
	session   *identity.Session
	viewer    *identity.Viewer
	sessionID string
	err       error

	lookupCalls int
}

func (s *stubProvider) SignIn(ctx context.Context, email, password string) (*identity.Session, error) {
	return s.session, s.err
}

func (s *stubProvider) Register(ctx context.Context, email, password, displayName string) (*identity.Session, error) {
	return s.session, s.err
}

func (s *stubProvider) OAuthSignIn(ctx context.Context, provider, code string) (*identity.Session, error) {
	return s.session, s.err
}

func (s *stubProvider) SendPhoneCode(ctx context.Context, phone string) (string, error) {
	return s.sessionID, s.err
}

func (s *stubProvider) VerifyPhoneCode(ctx context.Context, sessionID, code string) (*identity.Session, error) {
	return s.session, s.err
}

func (s *stubProvider) Lookup(ctx context.Context, token string) (*identity.Viewer, error) {
	s.lookupCalls++
	return s.viewer, s.err
}

func (s *stubProvider) SignOut(ctx context.Context, token string) error {
	return s.err
}

func adminSession() *identity.Session {
	return &identity.Session{
		Token:  "tok-1",
		Viewer: identity.Viewer{ID: "u1", Email: "owner@example.com", Name: "Owner"},
	}
}

func TestHasCapabilityMatchesAdminEmailCaseInsensitively(t *testing.T) {
	gate := NewGate(&stubProvider{}, "owner@example.com")

	assert.True(t, gate.HasCapability(&identity.Viewer{Email: "owner@example.com"}, CapabilityManageLeads))
	assert.True(t, gate.HasCapability(&identity.Viewer{Email: "OWNER@Example.Com"}, CapabilityManageLeads))
	assert.False(t, gate.HasCapability(&identity.Viewer{Email: "visitor@example.com"}, CapabilityManageLeads))
}

func TestHasCapabilityDeniesAnonymousAndUnknown(t *testing.T) {
	gate := NewGate(&stubProvider{}, "owner@example.com")

	assert.False(t, gate.HasCapability(nil, CapabilityManageLeads))
	assert.False(t, gate.HasCapability(&identity.Viewer{Email: "owner@example.com"}, "export_reports"))

	// With no admin configured nobody is an admin.
	unconfigured := NewGate(&stubProvider{}, "")
	assert.False(t, unconfigured.HasCapability(&identity.Viewer{Email: ""}, CapabilityManageLeads))
}

func TestLoginSetsViewer(t *testing.T) {
	gate := NewGate(&stubProvider{session: adminSession()}, "owner@example.com")

	result := gate.Login(context.Background(), "owner@example.com", "pw")

	assert.True(t, result.Success)
	assert.Equal(t, "owner@example.com", gate.Viewer().Email)
	assert.True(t, gate.IsAdmin())
}

func TestLoginFailureSurfacesUserMessage(t *testing.T) {
	provider := &stubProvider{err: &identity.AuthError{Code: "WRONG_PASSWORD", Message: "Incorrect password"}}
	gate := NewGate(provider, "owner@example.com")

	result := gate.Login(context.Background(), "owner@example.com", "bad")

	assert.False(t, result.Success)
	assert.Equal(t, "Incorrect password", result.Message)
	assert.Nil(t, gate.Viewer())
}

func TestLoginFailureUnknownErrorGetsGenericMessage(t *testing.T) {
	gate := NewGate(&stubProvider{err: errors.New("boom")}, "owner@example.com")

	result := gate.Login(context.Background(), "owner@example.com", "pw")

	assert.False(t, result.Success)
	assert.Equal(t, "An unexpected error occurred. Please try again", result.Message)
}

func TestResumeRestoresSession(t *testing.T) {
	provider := &stubProvider{viewer: &identity.Viewer{ID: "u1", Email: "owner@example.com"}}
	gate := NewGate(provider, "owner@example.com")

	gate.Resume(context.Background(), "tok-1", time.Second)

	assert.NotNil(t, gate.Viewer())
	assert.True(t, gate.IsAdmin())
}

func TestResumeFailureLeavesViewerAnonymous(t *testing.T) {
	provider := &stubProvider{err: errors.New("provider down")}
	gate := NewGate(provider, "owner@example.com")

	gate.Resume(context.Background(), "tok-1", time.Second)

	assert.Nil(t, gate.Viewer())
	assert.False(t, gate.IsAdmin())
}

func TestResumeWithoutTokenSkipsProvider(t *testing.T) {
	provider := &stubProvider{}
	gate := NewGate(provider, "owner@example.com")

	gate.Resume(context.Background(), "", time.Second)

	assert.Nil(t, gate.Viewer())
	assert.Zero(t, provider.lookupCalls)
}

func TestPhoneVerificationRoundTrip(t *testing.T) {
	provider := &stubProvider{sessionID: "verif-42", session: adminSession()}
	gate := NewGate(provider, "owner@example.com")

	session, result := gate.StartPhoneVerification(context.Background(), "+911234567890")
	assert.True(t, result.Success)
	assert.Equal(t, "verif-42", session.ID())

	// The id round-trips through the client between the two requests.
	resumed := gate.ResumeVerification(session.ID())
	result = resumed.Verify(context.Background(), "123456")

	assert.True(t, result.Success)
	assert.NotNil(t, gate.Viewer())
}

func TestLogoutClearsSession(t *testing.T) {
	gate := NewGate(&stubProvider{session: adminSession()}, "owner@example.com")

	gate.Login(context.Background(), "owner@example.com", "pw")
	assert.NotNil(t, gate.Viewer())

	gate.Logout(context.Background())
	assert.Nil(t, gate.Viewer())
	assert.False(t, gate.IsAdmin())
}

func TestResolveViewerEmptyTokenIsAnonymous(t *testing.T) {
	provider := &stubProvider{}
	gate := NewGate(provider, "owner@example.com")

	viewer, err := gate.ResolveViewer(context.Background(), "")

	assert.NoError(t, err)
	assert.Nil(t, viewer)
	assert.Zero(t, provider.lookupCalls)
}
