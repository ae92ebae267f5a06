package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/updoc-health/updoc/internal/api/dto"
	"github.com/updoc-health/updoc/internal/domain"
)

// APIError is a server-reported failure, carrying the taxonomy code
// and the human-readable message the UI surfaces inline.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorEnvelope mirrors the server's error response shape.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the updoc API server. It implements [Source].
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SignupOrLogin authenticates against the identity boundary, creating
// the account on first use.
func (c *Client) SignupOrLogin(ctx context.Context, username, password string, role domain.Role) (dto.User, error) {
	var user dto.User
	err := c.do(ctx, http.MethodPost, "/api/signup_or_login", dto.SignupOrLoginRequest{
		Username: username,
		Password: password,
		Role:     role,
	}, &user)
	return user, err
}

// Tickets implements Source.
func (c *Client) Tickets(ctx context.Context, user dto.User) ([]dto.Ticket, error) {
	var tickets []dto.Ticket
	path := "/api/tickets?userId=" + url.QueryEscape(user.ID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// Actions implements Source.
func (c *Client) Actions(ctx context.Context, ticketID string) ([]dto.Action, error) {
	var actions []dto.Action
	path := fmt.Sprintf("/api/tickets/%s/actions", url.PathEscape(ticketID))
	if err := c.do(ctx, http.MethodGet, path, nil, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// Create implements Source.
func (c *Client) Create(ctx context.Context, patientID, description, title string) (dto.Ticket, error) {
	var ticket dto.Ticket
	err := c.do(ctx, http.MethodPost, "/api/tickets", dto.CreateTicketRequest{
		PatientID:   patientID,
		Description: description,
		Title:       title,
	}, &ticket)
	return ticket, err
}

// UpdateStatus implements Source.
func (c *Client) UpdateStatus(ctx context.Context, ticketID string, status domain.TicketStatus, userID string) (dto.Ticket, error) {
	var ticket dto.Ticket
	path := fmt.Sprintf("/api/tickets/%s", url.PathEscape(ticketID))
	err := c.do(ctx, http.MethodPut, path, dto.UpdateTicketRequest{
		Status: status,
		UserID: userID,
	}, &ticket)
	return ticket, err
}

// Delete implements Source.
func (c *Client) Delete(ctx context.Context, ticketID, userID string) error {
	path := fmt.Sprintf("/api/tickets/%s?userId=%s", url.PathEscape(ticketID), url.QueryEscape(userID))
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do executes one request, decoding either the success body into out
// or the error envelope into an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var envelope errorEnvelope
		if jsonErr := json.Unmarshal(payload, &envelope); jsonErr == nil && envelope.Error.Message != "" {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(payload, out)
}
