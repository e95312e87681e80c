package tidycal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// BookingsService operates on the caller's own bookings.
type BookingsService struct {
	client *Client
}

// ListBookingsOptions filters the booking list. Nil fields are omitted from
// the query string.
type ListBookingsOptions struct {
	StartsAt     *time.Time
	EndsAt       *time.Time
	Cancelled    *bool
	Page         *int
	IncludeTeams *bool
}

// List fetches bookings, optionally filtered. Query parameters appear in the
// fixed order starts_at, ends_at, cancelled, page, include_teams.
func (s *BookingsService) List(ctx context.Context, opts *ListBookingsOptions) ([]Booking, error) {
	const op = "list bookings"

	var params []string
	if opts != nil {
		if opts.StartsAt != nil {
			if opts.StartsAt.IsZero() {
				return nil, s.client.wrapError(op, invalidField("starts_at", "'starts_at' must be a valid date"))
			}
			params = append(params, "starts_at="+formatDate(*opts.StartsAt))
		}
		if opts.EndsAt != nil {
			if opts.EndsAt.IsZero() {
				return nil, s.client.wrapError(op, invalidField("ends_at", "'ends_at' must be a valid date"))
			}
			params = append(params, "ends_at="+formatDate(*opts.EndsAt))
		}
		if opts.Cancelled != nil {
			params = append(params, "cancelled="+strconv.FormatBool(*opts.Cancelled))
		}
		if opts.Page != nil {
			params = append(params, "page="+strconv.Itoa(*opts.Page))
		}
		if opts.IncludeTeams != nil {
			params = append(params, "include_teams="+strconv.FormatBool(*opts.IncludeTeams))
		}
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/bookings", joinParams(params), nil)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, body, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.client.wrapError(op, genericAPIError("List Bookings", resp.StatusCode))
	}

	var out struct {
		Data []Booking `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

// Get fetches a single booking by ID.
func (s *BookingsService) Get(ctx context.Context, bookingID int) (*Booking, error) {
	const op = "get booking"

	if bookingID <= 0 {
		return nil, s.client.wrapError(op, invalidField("booking_id", "booking ID is required and must be a positive number"))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", bookingID), "", nil)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, body, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusForbidden:
			return nil, s.client.wrapError(op, newAPIError(403, fmt.Sprintf("Forbidden - You do not have permission to view booking ID %d", bookingID)))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Booking not found"))
		case http.StatusUnprocessableEntity:
			return nil, s.client.wrapError(op, newAPIError(422, "Validation Error"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Get Booking", resp.StatusCode))
		}
	}

	var out struct {
		Data Booking `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return &out.Data, nil
}

// Cancel issues the one allowed booking transition. The reason is optional;
// when empty an empty body is sent.
func (s *BookingsService) Cancel(ctx context.Context, bookingID int, reason string) (*Booking, error) {
	const op = "cancel booking"

	if bookingID <= 0 {
		return nil, s.client.wrapError(op, invalidField("booking_id", "booking ID is required and must be a positive number"))
	}

	var body any = struct{}{}
	if reason != "" {
		body = payload{{"reason", reason}}
	}

	req, err := s.client.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d/cancel", bookingID), "", body)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, respBody, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return nil, s.client.wrapError(op, newAPIError(400, "Bad Request - Booking is already cancelled"))
		case http.StatusForbidden:
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to cancel this booking"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Booking not found"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Cancel Booking", resp.StatusCode))
		}
	}

	var out struct {
		Data Booking `json:"data"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return &out.Data, nil
}
