// Package auth talks to the ChattaTrader account API and holds the
// in-memory session.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"

	apierrors "github.com/chattatrader/chattacli/internal/errors"
	"github.com/chattatrader/chattacli/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Client is the REST client for the auth endpoints.
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithHTTPClient substitutes the HTTP client. Used by tests.
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates an auth Client for the API at baseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(30),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}
		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Login authenticates with email and password. Server-side rejections come
// back as AuthError, bad input as ValidationError.
func (c *Client) Login(email, password string) (*models.User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, apierrors.NewValidationError("password", "password is required")
	}

	var user models.User
	err := c.post("/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new account.
func (c *Client) Register(username, email, password string) (*models.User, error) {
	if len(strings.TrimSpace(username)) < 3 {
		return nil, apierrors.NewValidationError("username", "username must be at least 3 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, apierrors.NewValidationError("password", "password must be at least 8 characters")
	}

	var user models.User
	err := c.post("/users/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestCode asks the backend to mail a verification code.
func (c *Client) RequestCode(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	return c.post("/verification/requestcode", map[string]string{"email": email}, nil)
}

// VerifyCode submits the OTP code for the email.
func (c *Client) VerifyCode(code, email string) error {
	if strings.TrimSpace(code) == "" {
		return apierrors.NewValidationError("code", "verification code is required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	return c.post("/verification/verifycode", map[string]string{
		"code":  code,
		"email": email,
	}, nil)
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apierrors.NewValidationError("email", "invalid email address")
	}
	return nil
}

// post sends a JSON body and decodes a 2xx response into out (when out is
// non-nil). Non-2xx responses map to AuthError carrying the server's
// message field, or a generic fallback.
func (c *Client) post(path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apierrors.NewTransportError("post", err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierrors.NewAuthError(resp.StatusCode, serverMessage(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return apierrors.NewParseError(err.Error())
		}
	}
	return nil
}

// serverMessage extracts the API's message field, falling back to a
// generic string.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return "something went wrong, please try again"
}
