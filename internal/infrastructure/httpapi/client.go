package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

// Client talks to a remote favorites server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.FavoritesAPI = (*Client)(nil)

// NewClient creates a client for cfg.ServerURL. cfg.Timeout bounds each request only when set.
func NewClient(cfg config.ClientConfig, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", cfg.ServerURL)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.ServerURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.With("component", "favorites_client"),
	}, nil
}

// List fetches the current owner's favorites.
func (c *Client) List(ctx context.Context) ([]entities.SavedCharacter, error) {
	var resp listResponse
	if err := c.do(ctx, services.OpList, http.MethodGet, FavoritesPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Items == nil {
		resp.Items = []entities.SavedCharacter{}
	}
	return resp.Items, nil
}

// Create saves req. A duplicate comes back as a result with Duplicated set, not an error.
func (c *Client) Create(ctx context.Context, req entities.CreateRequest) (*entities.CreateResult, error) {
	var result entities.CreateResult
	if err := c.do(ctx, services.OpCreate, http.MethodPost, FavoritesPath, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Delete removes id.
func (c *Client) Delete(ctx context.Context, id string) error {
	var resp deleteResponse
	return c.do(ctx, services.OpRemove, http.MethodDelete, FavoritesPath+"/"+url.PathEscape(id), nil, &resp)
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(TraceIDHeader, traceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "favorites request failed", "op", op, "error", err)
		return &entities.StoreError{Op: op, Message: services.FallbackMessage(op), Details: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(ctx, op, resp.StatusCode, resp.Body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.ErrorContext(ctx, "decoding favorites response failed", "op", op, "error", err)
		return &entities.StoreError{Op: op, Message: services.FallbackMessage(op), Details: err.Error(), Err: err}
	}
	return nil
}

// decodeError maps an error payload back onto the typed favorites errors.
// A body that cannot be read still yields a StoreError carrying the read failure.
func (c *Client) decodeError(ctx context.Context, op string, status int, body io.Reader) error {
	var payload errorResponse
	raw, readErr := io.ReadAll(body)
	if readErr != nil {
		c.logger.WarnContext(ctx, "reading favorites error body failed", "op", op, "status", status, "error", readErr)
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		payload.Details = strings.TrimSpace(string(raw))
	}
	if readErr != nil {
		payload.Details = strings.TrimSpace(payload.Details + " (reading body: " + readErr.Error() + ")")
	}

	if status == http.StatusBadRequest && len(payload.Fields) > 0 {
		return &entities.ValidationError{Fields: payload.Fields}
	}

	message := payload.Error
	if message == "" {
		message = services.FallbackMessage(op)
	}
	statusErr := errors.Join(fmt.Errorf("server returned status %d", status), readErr)
	c.logger.ErrorContext(ctx, "favorites request rejected",
		"op", op, "status", status, "error", message)

	return &entities.StoreError{
		Op:      op,
		Message: message,
		Details: payload.Details,
		Err: &ports.PayloadError{
			Message: payload.Error,
			Details: payload.Details,
			Code:    strconv.Itoa(status),
			Err:     statusErr,
		},
	}
}
