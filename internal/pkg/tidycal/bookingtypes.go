package tidycal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BookingTypesService operates on the caller's own booking types and the
// bookings and timeslots scoped to them.
type BookingTypesService struct {
	client *Client
}

func (s *BookingTypesService) List(ctx context.Context, page int) ([]BookingType, error) {
	const op = "list booking types"

	if page <= 0 {
		return nil, s.client.wrapError(op, invalidField("page", "'page' must be a positive number"))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/booking-types", "page="+strconv.Itoa(page), nil)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, body, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.client.wrapError(op, genericAPIError("List Booking Types", resp.StatusCode))
	}

	var out struct {
		Data []BookingType `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

// Create validates the input, prunes undefined fields from the body and
// submits the new booking type.
func (s *BookingTypesService) Create(ctx context.Context, data CreateBookingTypeInput) (*BookingType, error) {
	const op = "create booking type"

	if err := validateBookingTypeInput(data); err != nil {
		return nil, s.client.wrapError(op, err)
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, "/booking-types", "", bookingTypePayload(data))
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, body, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusUnprocessableEntity:
			return nil, s.client.wrapError(op, newAPIError(422, "Validation Error"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Create Booking Type", resp.StatusCode))
		}
	}

	var out struct {
		Data BookingType `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return &out.Data, nil
}

// ListTimeslots fetches the available windows for a booking type between two
// required instants.
func (s *BookingTypesService) ListTimeslots(ctx context.Context, bookingTypeID int, startsAt, endsAt time.Time) ([]Timeslot, error) {
	const op = "list available timeslots"

	if bookingTypeID <= 0 {
		return nil, s.client.wrapError(op, invalidField("booking_type_id", "booking type ID is required and must be a positive number"))
	}
	if startsAt.IsZero() {
		return nil, s.client.wrapError(op, invalidField("starts_at", "'starts_at' must be a valid date"))
	}
	if endsAt.IsZero() {
		return nil, s.client.wrapError(op, invalidField("ends_at", "'ends_at' must be a valid date"))
	}

	query := joinParams([]string{
		"starts_at=" + url.QueryEscape(formatTimestamp(startsAt)),
		"ends_at=" + url.QueryEscape(formatTimestamp(endsAt)),
	})
	req, err := s.client.newRequest(ctx, http.MethodGet, fmt.Sprintf("/booking-types/%d/timeslots", bookingTypeID), query, nil)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, body, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.client.wrapError(op, genericAPIError("List Available Timeslots", resp.StatusCode))
	}

	var out struct {
		Data []Timeslot `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

// BookingQuestionInput answers a booking type question at booking time. The
// answer must be a string or a list of strings.
type BookingQuestionInput struct {
	BookingTypeQuestionID int `json:"booking_type_question_id"`
	Answer                any `json:"answer"`
}

type CreateBookingInput struct {
	StartsAt         time.Time
	Name             string
	Email            string
	Timezone         string
	BookingQuestions []BookingQuestionInput
}

func validateBookingQuestions(questions []BookingQuestionInput) error {
	for _, q := range questions {
		if q.BookingTypeQuestionID <= 0 {
			return invalidField("booking_questions", "each booking question ID must be a valid integer")
		}
		switch answer := q.Answer.(type) {
		case string:
		case []string:
		case []any:
			for _, a := range answer {
				if _, ok := a.(string); !ok {
					return invalidField("booking_questions", "each answer in booking questions must be either a string or an array of strings")
				}
			}
		default:
			return invalidField("booking_questions", "each answer in booking questions must be either a string or an array of strings")
		}
	}
	return nil
}

// CreateBooking books a timeslot for the given booking type.
func (s *BookingTypesService) CreateBooking(ctx context.Context, bookingTypeID int, data CreateBookingInput) (*Booking, error) {
	const op = "create booking"

	if bookingTypeID <= 0 {
		return nil, s.client.wrapError(op, invalidField("booking_type_id", "booking type ID is required and must be a positive number"))
	}
	if data.StartsAt.IsZero() {
		return nil, s.client.wrapError(op, missingField("starts_at"))
	}
	if data.Name == "" {
		return nil, s.client.wrapError(op, missingField("name"))
	}
	if data.Email == "" {
		return nil, s.client.wrapError(op, missingField("email"))
	}
	if data.Timezone == "" {
		return nil, s.client.wrapError(op, missingField("timezone"))
	}
	if len(data.Name) > maxNameLength {
		return nil, s.client.wrapError(op, invalidField("name", fmt.Sprintf("name must not exceed %d characters", maxNameLength)))
	}
	if !isValidEmail(data.Email) || len(data.Email) > maxNameLength {
		return nil, s.client.wrapError(op, invalidField("email", fmt.Sprintf("email must be a valid address format not exceeding %d characters", maxNameLength)))
	}
	if len(data.Timezone) > maxNameLength {
		return nil, s.client.wrapError(op, invalidField("timezone", fmt.Sprintf("timezone must not exceed %d characters", maxNameLength)))
	}
	if err := validateBookingQuestions(data.BookingQuestions); err != nil {
		return nil, s.client.wrapError(op, err)
	}

	body := payload{
		{"starts_at", formatTimestamp(data.StartsAt)},
		{"name", data.Name},
		{"email", data.Email},
		{"timezone", data.Timezone},
	}
	if len(data.BookingQuestions) > 0 {
		body = append(body, payloadField{"booking_questions", data.BookingQuestions})
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, fmt.Sprintf("/booking-types/%d/bookings", bookingTypeID), "", body)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, respBody, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		switch resp.StatusCode {
		case http.StatusForbidden:
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to create bookings for this booking type"))
		case http.StatusConflict:
			return nil, s.client.wrapError(op, newAPIError(409, "Conflict - The timeslot is not available"))
		case http.StatusUnprocessableEntity:
			return nil, s.client.wrapError(op, newAPIError(422, "Validation Error"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Create Booking", resp.StatusCode))
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
