package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/uraiai/tidycal-go/internal/pkg/tidycal"
)

const apiKeySecret = "TIDYCAL_API_KEY"

var validate = validator.New()

// Config controls how tool handlers reach the TidyCal API. The zero value
// talks to the public API with default transport settings.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (cfg Config) clientFor(rctx RuntimeContext) (*tidycal.Client, error) {
	apiKey := rctx.Secret(apiKeySecret)
	if apiKey == "" {
		return nil, fmt.Errorf("%s secret not found, configure it in your environment", apiKeySecret)
	}
	client, err := tidycal.NewClient(apiKey)
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		client.HTTPClient = cfg.HTTPClient
	}
	return client, nil
}

// bookingTypeID resolves the booking type the tools operate on from the
// per-invocation vars.
func bookingTypeID(rctx RuntimeContext) (int, error) {
	id, ok := rctx.IntVar("booking_type_id")
	if !ok {
		return 0, errors.New("booking_type_id var not set, configure it in your runtime")
	}
	return id, nil
}

// parseInstant accepts the two time forms tools receive from the model:
// a full RFC 3339 timestamp or a date-only string.
func parseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q, use ISO 8601 (e.g. '2025-10-10T11:15:00Z')", value)
	}
	return t, nil
}

func decodeArgs(args json.RawMessage, into any) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, into); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return validate.Struct(into)
}

// DefaultTools builds the tool set registered with the host runtime.
func DefaultTools(cfg Config) []Tool {
	return []Tool{
		createBookingTool(cfg),
		listTimeslotsTool(cfg),
		listBookingsTool(cfg),
		getBookingTool(cfg),
		cancelBookingTool(cfg),
	}
}

type createBookingArgs struct {
	StartsAt string `json:"starts_at" validate:"required"`
	Name     string `json:"name" validate:"required,max=191"`
	Email    string `json:"email" validate:"required,email,max=191"`
	Timezone string `json:"timezone" validate:"required,max=191"`
}

func createBookingTool(cfg Config) Tool {
	return Tool{
		Declaration: FunctionDeclaration{
			Name:        "create_booking",
			Description: "Create a new booking for a specific booking type in TidyCal.",
			Parameters: Schema{
				SchemaType: "Object",
				Properties: map[string]Schema{
					"starts_at": {SchemaType: "string", Description: "The start time of the booking in ISO 8601 format (e.g., '2025-10-10T11:15:00Z')."},
					"name":      {SchemaType: "string", Description: "The name of the person booking."},
					"email":     {SchemaType: "string", Description: "The email of the person booking."},
					"timezone":  {SchemaType: "string", Description: "The timezone for the booking (e.g., 'America/New_York')."},
				},
				Required: []string{"starts_at", "name", "email", "timezone"},
			},
		},
		Handler: func(ctx context.Context, rctx RuntimeContext, args json.RawMessage) (any, error) {
			var in createBookingArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			startsAt, err := parseInstant(in.StartsAt)
			if err != nil {
				return nil, err
			}
			typeID, err := bookingTypeID(rctx)
			if err != nil {
				return nil, err
			}
			client, err := cfg.clientFor(rctx)
			if err != nil {
				return nil, err
			}
			return client.BookingTypes.CreateBooking(ctx, typeID, tidycal.CreateBookingInput{
				StartsAt: startsAt,
				Name:     in.Name,
				Email:    in.Email,
				Timezone: in.Timezone,
			})
		},
	}
}

type listTimeslotsArgs struct {
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

func listTimeslotsTool(cfg Config) Tool {
	return Tool{
		Declaration: FunctionDeclaration{
			Name:        "list_available_timeslots",
			Description: "List available timeslots for a specific booking type within a given date range.",
			Parameters: Schema{
				SchemaType: "Object",
				Properties: map[string]Schema{
					"starts_at": {SchemaType: "string", Description: "The start date for the search in ISO 8601 format (e.g., '2025-10-01T00:00:00Z'). Defaults to the current time."},
					"ends_at":   {SchemaType: "string", Description: "The end date for the search in ISO 8601 format (e.g., '2025-10-17T23:59:59Z'). Defaults to 7 days from the start time."},
				},
			},
		},
		Handler: func(ctx context.Context, rctx RuntimeContext, args json.RawMessage) (any, error) {
			var in listTimeslotsArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}

			start := time.Now()
			if in.StartsAt != "" {
				parsed, err := parseInstant(in.StartsAt)
				if err != nil {
					return nil, err
				}
				start = parsed
			}
			end := start.Add(7 * 24 * time.Hour)
			if in.EndsAt != "" {
				parsed, err := parseInstant(in.EndsAt)
				if err != nil {
					return nil, err
				}
				end = parsed
			}

			typeID, err := bookingTypeID(rctx)
			if err != nil {
				return nil, err
			}
			client, err := cfg.clientFor(rctx)
			if err != nil {
				return nil, err
			}
			timeslots, err := client.BookingTypes.ListTimeslots(ctx, typeID, start, end)
			if err != nil {
				return nil, err
			}
			return map[string]any{"timeslots": timeslots}, nil
		},
	}
}

type listBookingsArgs struct {
	StartsAt     string `json:"starts_at"`
	EndsAt       string `json:"ends_at"`
	Cancelled    *bool  `json:"cancelled"`
	Page         *int   `json:"page"`
	IncludeTeams *bool  `json:"include_teams"`
}

func listBookingsTool(cfg Config) Tool {
	return Tool{
		Declaration: FunctionDeclaration{
			Name:        "list_bookings",
			Description: "List bookings, optionally filtered by date range and cancellation state.",
			Parameters: Schema{
				SchemaType: "Object",
				Properties: map[string]Schema{
					"starts_at":     {SchemaType: "string", Description: "Only include bookings starting on or after this date."},
					"ends_at":       {SchemaType: "string", Description: "Only include bookings starting on or before this date."},
					"cancelled":     {SchemaType: "boolean", Description: "When true, only cancelled bookings are returned."},
					"page":          {SchemaType: "number", Description: "Page of results to fetch."},
					"include_teams": {SchemaType: "boolean", Description: "Include bookings for teams the user belongs to."},
				},
			},
		},
		Handler: func(ctx context.Context, rctx RuntimeContext, args json.RawMessage) (any, error) {
			var in listBookingsArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}

			opts := &tidycal.ListBookingsOptions{
				Cancelled:    in.Cancelled,
				Page:         in.Page,
				IncludeTeams: in.IncludeTeams,
			}
			if in.StartsAt != "" {
				parsed, err := parseInstant(in.StartsAt)
				if err != nil {
					return nil, err
				}
				opts.StartsAt = &parsed
			}
			if in.EndsAt != "" {
				parsed, err := parseInstant(in.EndsAt)
				if err != nil {
					return nil, err
				}
				opts.EndsAt = &parsed
			}

			client, err := cfg.clientFor(rctx)
			if err != nil {
				return nil, err
			}
			bookings, err := client.Bookings.List(ctx, opts)
			if err != nil {
				return nil, err
			}
			return map[string]any{"bookings": bookings}, nil
		},
	}
}

type getBookingArgs struct {
	BookingID int `json:"booking_id" validate:"required,gt=0"`
}

func getBookingTool(cfg Config) Tool {
	return Tool{
		Declaration: FunctionDeclaration{
			Name:        "get_booking",
			Description: "Get a single booking by its ID.",
			Parameters: Schema{
				SchemaType: "Object",
				Properties: map[string]Schema{
					"booking_id": {SchemaType: "number", Description: "The ID of the booking to fetch."},
				},
				Required: []string{"booking_id"},
			},
		},
		Handler: func(ctx context.Context, rctx RuntimeContext, args json.RawMessage) (any, error) {
			var in getBookingArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			client, err := cfg.clientFor(rctx)
			if err != nil {
				return nil, err
			}
			return client.Bookings.Get(ctx, in.BookingID)
		},
	}
}

type cancelBookingArgs struct {
	BookingID int    `json:"booking_id" validate:"required,gt=0"`
	Reason    string `json:"reason"`
}

func cancelBookingTool(cfg Config) Tool {
	return Tool{
		Declaration: FunctionDeclaration{
			Name:        "cancel_booking",
			Description: "Cancel a booking by its ID, with an optional reason.",
			Parameters: Schema{
				SchemaType: "Object",
				Properties: map[string]Schema{
					"booking_id": {SchemaType: "number", Description: "The ID of the booking to cancel."},
					"reason":     {SchemaType: "string", Description: "Why the booking is being cancelled."},
				},
				Required: []string{"booking_id"},
			},
		},
		Handler: func(ctx context.Context, rctx RuntimeContext, args json.RawMessage) (any, error) {
			var in cancelBookingArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			client, err := cfg.clientFor(rctx)
			if err != nil {
				return nil, err
			}
			return client.Bookings.Cancel(ctx, in.BookingID, in.Reason)
		},
	}
}
