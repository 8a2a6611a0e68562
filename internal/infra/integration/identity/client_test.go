package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-key"), srv
}

func TestSignInSuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/sessions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","viewer":{"id":"u1","email":"a@x.com","name":"A"}}`))
	})
	defer srv.Close()

	session, err := client.SignIn(context.Background(), "a@x.com", "secret")

	assert.NoError(t, err)
	assert.Equal(t, "tok-1", session.Token)
	assert.Equal(t, "a@x.com", session.Viewer.Email)
}

func TestSignInMapsProviderCodeToUserMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"WRONG_PASSWORD","message":"raw provider detail"}}`))
	})
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "a@x.com", "bad")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "WRONG_PASSWORD", authErr.Code)
	// The provider's raw detail never reaches the caller.
	assert.NotContains(t, authErr.Message, "raw provider detail")
	assert.NotEmpty(t, authErr.Message)
}

func TestUnknownCodeGetsGenericMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"SOMETHING_NEW"}}`))
	})
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "a@x.com", "pw")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "SOMETHING_NEW", authErr.Code)
	assert.Equal(t, "An unexpected error occurred. Please try again", authErr.Message)
}

func TestNonJSONErrorBodyFallsBackToHTTPCode(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})
	defer srv.Close()

	_, err := client.SignIn(context.Background(), "a@x.com", "pw")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "HTTP_502", authErr.Code)
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	client := NewClient(srv.URL, "test-key")
	srv.Close()

	_, err := client.SignIn(context.Background(), "a@x.com", "pw")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "NETWORK_FAILURE", authErr.Code)
}

func TestUnconfiguredClientRefusesCalls(t *testing.T) {
	client := NewClient("", "")

	assert.False(t, client.Configured())

	_, err := client.SignIn(context.Background(), "a@x.com", "pw")

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Equal(t, "NETWORK_FAILURE", authErr.Code)
}

func TestLookupSendsSessionToken(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/sessions/current", r.URL.Path)
		assert.Equal(t, "tok-9", r.Header.Get("X-Session-Token"))

		w.Write([]byte(`{"id":"u1","email":"a@x.com"}`))
	})
	defer srv.Close()

	viewer, err := client.Lookup(context.Background(), "tok-9")

	assert.NoError(t, err)
	assert.Equal(t, "u1", viewer.ID)
}

func TestSendPhoneCodeReturnsSessionID(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/phone/codes", r.URL.Path)
		w.Write([]byte(`{"session_id":"verif-42"}`))
	})
	defer srv.Close()

	sessionID, err := client.SendPhoneCode(context.Background(), "+919058909777")

	assert.NoError(t, err)
	assert.Equal(t, "verif-42", sessionID)
}
