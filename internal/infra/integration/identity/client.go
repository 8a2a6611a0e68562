package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the hosted identity provider's REST API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/v1/sessions", signInRequest{Email: email, Password: password}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) Register(ctx context.Context, email, password, displayName string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/v1/accounts", registerRequest{
		Email:       email,
		Password:    password,
		DisplayName: displayName,
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// OAuthSignIn exchanges the code the provider popup handed the browser.
func (c *Client) OAuthSignIn(ctx context.Context, provider, code string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/v1/oauth/sessions", oauthRequest{Provider: provider, Code: code}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// SendPhoneCode starts phone sign-in and returns the provider's
// verification session id. The caller keeps it and passes it back to
// VerifyPhoneCode; nothing is stashed in package state.
func (c *Client) SendPhoneCode(ctx context.Context, phone string) (string, error) {
	var resp phoneCodeResponse
	err := c.do(ctx, http.MethodPost, "/v1/phone/codes", phoneCodeRequest{Phone: phone}, &resp)
	if err != nil {
		return "", err
	}
	return resp.SessionID, nil
}

func (c *Client) VerifyPhoneCode(ctx context.Context, sessionID, code string) (*Session, error) {
	var session Session
	err := c.do(ctx, http.MethodPost, "/v1/phone/verify", phoneVerifyRequest{SessionID: sessionID, Code: code}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Lookup resolves a bearer token to the viewer it belongs to.
func (c *Client) Lookup(ctx context.Context, token string) (*Viewer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/sessions/current", nil)
	if err != nil {
		return nil, err
	}
	c.addAuthHeaders(req)
	req.Header.Set("X-Session-Token", token)

	var viewer Viewer
	if err := c.send(req, &viewer); err != nil {
		return nil, err
	}
	return &viewer, nil
}

func (c *Client) SignOut(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/v1/sessions/current", nil)
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)
	req.Header.Set("X-Session-Token", token)

	return c.send(req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	if !c.Configured() {
		return newAuthError("NETWORK_FAILURE")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	c.addAuthHeaders(req)

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return newAuthError("NETWORK_FAILURE")
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.Unmarshal(raw, &errResp); err == nil && errResp.Error.Code != "" {
			return newAuthError(errResp.Error.Code)
		}
		return newAuthError(fmt.Sprintf("HTTP_%d", resp.StatusCode))
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(raw, out)
}

func (c *Client) addAuthHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
}
