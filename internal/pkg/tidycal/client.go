package tidycal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const defaultBaseURL = "https://tidycal.com/api"

// Client owns the service base address and the bearer credential. The three
// resource services hang off it and share its transport configuration.
// A Client is immutable after construction and safe for concurrent use.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	apiKey string

	Bookings     *BookingsService
	BookingTypes *BookingTypesService
	Teams        *TeamsService
}

func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("tidycal api key is required")
	}

	c := &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{},
		apiKey:     apiKey,
	}
	c.Bookings = &BookingsService{client: c}
	c.BookingTypes = &BookingTypesService{client: c}
	c.Teams = &TeamsService{client: c}
	return c, nil
}

// newRequest builds a request against the configured base address with the
// bearer credential attached. A pre-encoded query string is used so that
// parameter order is preserved exactly as the operations declare it.
func (c *Client) newRequest(ctx context.Context, method, path, query string, body any) (*http.Request, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	if query != "" {
		url += "?" + query
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do executes the request and returns the response alongside its fully read
// body. Transport failures come back as plain errors for the caller to wrap.
func (c *Client) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	return resp, body, nil
}

// wrapError is the single error normalization boundary used by every resource
// operation: mapped *APIError values pass through unchanged, everything else
// gets operation context attached exactly once.
func (c *Client) wrapError(operation string, err error) error {
	log.Errorf("%s error: %v", operation, err)

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("%s error: %w", operation, err)
}
