// Package api is the typed consumer of the ipscope login API used by the
// CLI client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"ipscope/internal/domain/entity"

	"github.com/pkg/errors"
)

const defaultLoginFailedMessage = "Login failed. Please try again."

// Session is the token+profile pair the client holds after a successful
// login.
type Session struct {
	Token string         `json:"token"`
	User  entity.Profile `json:"user"`
}

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the ipscope API server.
type Client struct {
	baseURL string
	client  httpClient
}

// New builds an API client for the given server base URL, e.g.
// "http://localhost:8000".
func New(baseURL string, client httpClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL: baseURL,
		client:  client,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// errorBody is the API's error payload.
type errorBody struct {
	Message string `json:"message"`
}

// Login posts credentials to /api/login and returns the issued session.
// Failures are normalized through an ordered fallback: the API's message
// field, then the transport error, then a generic default. No retry: every
// failure is terminal for the attempt.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode login request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build login request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.New(messageOrDefault("", err, defaultLoginFailedMessage))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body errorBody
		_ = json.NewDecoder(resp.Body).Decode(&body)

		return nil, errors.New(messageOrDefault(body.Message, nil, defaultLoginFailedMessage))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode login response")
	}
	if session.Token == "" {
		return nil, errors.New(defaultLoginFailedMessage)
	}

	return &session, nil
}

// messageOrDefault is the explicit ordered fallback for user-facing error
// messages: API-provided message, then transport error, then the default.
func messageOrDefault(apiMessage string, transportErr error, fallback string) string {
	if apiMessage != "" {
		return apiMessage
	}
	if transportErr != nil {
		return transportErr.Error()
	}

	return fallback
}
