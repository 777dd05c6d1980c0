package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/superhedge/listingctl/internal/domain"
)

// DefaultTimeout applies when no backend timeout is configured
const DefaultTimeout = 30 * time.Second

// Client is a raw client for the listing backend. Every failure is returned;
// see Service for the degrading wrapper used by the use cases.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a new backend client
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log.With("component", "backend"),
	}
}

// GetListing retrieves a listing by id
func (c *Client) GetListing(ctx context.Context, listingID string) (*ListingDTO, error) {
	var listing ListingDTO
	if err := c.do(ctx, http.MethodGet, "/marketplace/listing/"+url.PathEscape(listingID), nil, nil, &listing); err != nil {
		return nil, fmt.Errorf("failed to get listing %s: %w", listingID, err)
	}
	return &listing, nil
}

// GetListedItems retrieves the listings of a seller on a chain
func (c *Client) GetListedItems(ctx context.Context, address common.Address, chainID uint64) ([]ListingDTO, error) {
	query := url.Values{"chainId": {strconv.FormatUint(chainID, 10)}}
	var items []ListingDTO
	if err := c.do(ctx, http.MethodGet, "/marketplace/listed-items/"+address.Hex(), query, nil, &items); err != nil {
		return nil, fmt.Errorf("failed to get listed items: %w", err)
	}
	return items, nil
}

// GetUserInfo retrieves the user record
func (c *Client) GetUserInfo(ctx context.Context, address common.Address) (*UserDTO, error) {
	var user UserDTO
	if err := c.do(ctx, http.MethodGet, "/users/"+address.Hex(), nil, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetPositions retrieves the products held by address
func (c *Client) GetPositions(ctx context.Context, address common.Address) ([]ProductDTO, error) {
	var products []ProductDTO
	if err := c.do(ctx, http.MethodGet, "/users/positions/"+address.Hex(), nil, nil, &products); err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}
	return products, nil
}

// GetHistory retrieves the transaction history. sort is -1 for newest first
// and 1 for oldest first.
func (c *Client) GetHistory(ctx context.Context, address common.Address, sort int) ([]HistoryDTO, error) {
	query := url.Values{"sort": {strconv.Itoa(sort)}}
	var history []HistoryDTO
	if err := c.do(ctx, http.MethodGet, "/users/history/"+address.Hex(), query, nil, &history); err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return history, nil
}

// UpdateListing patches a listing record. Only the dev backend serves it.
func (c *Client) UpdateListing(ctx context.Context, listingID string, update ListingUpdateDTO) (*ListingDTO, error) {
	var listing ListingDTO
	if err := c.do(ctx, http.MethodPut, "/marketplace/listing/"+url.PathEscape(listingID), nil, update, &listing); err != nil {
		return nil, fmt.Errorf("failed to update listing %s: %w", listingID, err)
	}
	return &listing, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("backend request", "method", method, "url", endpoint, "requestId", requestID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	c.log.Debug("backend response", "status", resp.StatusCode, "requestId", requestID, "bytes", len(data))

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
