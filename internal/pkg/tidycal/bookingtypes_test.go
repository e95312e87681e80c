package tidycal

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

const bookingTypeJSON = `{
	"id": 1516646, "user_id": 1, "title": "Intro Call",
	"description": "<p>A short intro call</p>",
	"duration_minutes": 30, "padding_minutes": 0,
	"disabled_at": null,
	"created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-01T00:00:00Z",
	"url_slug": "intro-call", "price": 0, "private": false,
	"latest_availability_days": 60, "redirect_url": null,
	"booking_threshold_minutes": 0, "max_bookings": 1,
	"url": "https://tidycal.com/example/intro-call"
}`

func TestListBookingTypes_PageValidation(t *testing.T) {
	requested := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	for _, page := range []int{0, -1} {
		if _, err := client.BookingTypes.List(context.Background(), page); err == nil {
			t.Fatalf("expected validation error for page %d", page)
		}
	}
	if requested {
		t.Fatalf("expected no request for invalid page")
	}
}

func TestListBookingTypes_Request(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[` + bookingTypeJSON + `]}`))
	})

	types, err := client.BookingTypes.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/booking-types" || gotQuery != "page=1" {
		t.Fatalf("unexpected request: %s?%s", gotPath, gotQuery)
	}
	if len(types) != 1 || types[0].ID != 1516646 {
		t.Fatalf("unexpected result: %+v", types)
	}
}

func TestCreateBookingType_ValidationBlocksRequest(t *testing.T) {
	requested := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	_, err := client.BookingTypes.Create(context.Background(), CreateBookingTypeInput{Title: "No slug"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if requested {
		t.Fatalf("expected no request when validation fails")
	}
}

func TestCreateBookingType_PrunedBody(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"data":` + bookingTypeJSON + `}`))
	})

	private := false
	_, err := client.BookingTypes.Create(context.Background(), CreateBookingTypeInput{
		Title:           "Intro Call",
		Description:     "<p>A short intro call</p>",
		DurationMinutes: 30,
		URLSlug:         "intro-call",
		Private:         &private,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// encoding/json escapes angle brackets in string values.
	want := `{"title":"Intro Call","description":"\u003cp\u003eA short intro call\u003c/p\u003e","duration_minutes":30,"url_slug":"intro-call","private":false}`
	if gotBody != want {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestCreateBookingType_UnprocessableEntity(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	_, err := client.BookingTypes.Create(context.Background(), validInput())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != 422 || apiErr.Message != "Validation Error" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestListTimeslots_QueryEncoding(t *testing.T) {
	var gotPath, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[{"starts_at":"2025-10-10T11:15:00Z","ends_at":"2025-10-10T11:45:00Z","available_bookings":3}]}`))
	})

	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 17, 23, 59, 59, 0, time.UTC)
	slots, err := client.BookingTypes.ListTimeslots(context.Background(), 1516646, start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/booking-types/1516646/timeslots" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	// Timestamps are URL-escaped and carry no fractional seconds.
	want := "starts_at=2025-10-01T00%3A00%3A00Z&ends_at=2025-10-17T23%3A59%3A59Z"
	if gotQuery != want {
		t.Fatalf("unexpected query: %q", gotQuery)
	}
	if len(slots) != 1 || slots[0].AvailableBookings != 3 {
		t.Fatalf("unexpected slots: %+v", slots)
	}
}

func TestListTimeslots_Validation(t *testing.T) {
	requested := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	now := time.Now()
	if _, err := client.BookingTypes.ListTimeslots(context.Background(), 0, now, now); err == nil {
		t.Fatalf("expected error for missing booking type id")
	}
	if _, err := client.BookingTypes.ListTimeslots(context.Background(), 1, time.Time{}, now); err == nil {
		t.Fatalf("expected error for zero start")
	}
	if _, err := client.BookingTypes.ListTimeslots(context.Background(), 1, now, time.Time{}); err == nil {
		t.Fatalf("expected error for zero end")
	}
	if requested {
		t.Fatalf("expected no requests for invalid input")
	}
}

func validBookingInput() CreateBookingInput {
	return CreateBookingInput{
		StartsAt: time.Date(2025, 10, 10, 11, 15, 0, 0, time.UTC),
		Name:     "Jordan Example",
		Email:    "jordan@example.com",
		Timezone: "America/New_York",
	}
}

const bookingJSON = `{
	"id": 6679363, "contact_id": 1, "booking_type_id": 1516646,
	"starts_at": "2025-10-10T11:15:00Z", "ends_at": "2025-10-10T11:45:00Z",
	"cancelled_at": null,
	"created_at": "2025-10-01T08:00:00Z", "updated_at": "2025-10-01T08:00:00Z",
	"timezone": "America/New_York", "meeting_url": null, "meeting_id": null,
	"questions": []
}`

func TestCreateBooking_RequiredFields(t *testing.T) {
	requested := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requested = true
	})

	tests := []struct {
		name   string
		mutate func(*CreateBookingInput)
	}{
		{name: "missing starts_at", mutate: func(d *CreateBookingInput) { d.StartsAt = time.Time{} }},
		{name: "missing name", mutate: func(d *CreateBookingInput) { d.Name = "" }},
		{name: "missing email", mutate: func(d *CreateBookingInput) { d.Email = "" }},
		{name: "missing timezone", mutate: func(d *CreateBookingInput) { d.Timezone = "" }},
		{name: "invalid email", mutate: func(d *CreateBookingInput) { d.Email = "not-an-email" }},
		{name: "name too long", mutate: func(d *CreateBookingInput) { d.Name = strings.Repeat("a", 192) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validBookingInput()
			tt.mutate(&data)
			if _, err := client.BookingTypes.CreateBooking(context.Background(), 1516646, data); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
	if requested {
		t.Fatalf("expected no requests for invalid input")
	}
}

func TestCreateBooking_QuestionShapes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":` + bookingJSON + `}`))
	})

	tests := []struct {
		name      string
		questions []BookingQuestionInput
		ok        bool
	}{
		{name: "string answer", questions: []BookingQuestionInput{{BookingTypeQuestionID: 1, Answer: "yes"}}, ok: true},
		{name: "string slice answer", questions: []BookingQuestionInput{{BookingTypeQuestionID: 1, Answer: []string{"a", "b"}}}, ok: true},
		{name: "decoded json slice answer", questions: []BookingQuestionInput{{BookingTypeQuestionID: 1, Answer: []any{"a", "b"}}}, ok: true},
		{name: "numeric answer", questions: []BookingQuestionInput{{BookingTypeQuestionID: 1, Answer: 42}}, ok: false},
		{name: "mixed slice answer", questions: []BookingQuestionInput{{BookingTypeQuestionID: 1, Answer: []any{"a", 1}}}, ok: false},
		{name: "missing question id", questions: []BookingQuestionInput{{Answer: "yes"}}, ok: false},
		{name: "nil answer", questions: []BookingQuestionInput{{BookingTypeQuestionID: 1}}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validBookingInput()
			data.BookingQuestions = tt.questions
			_, err := client.BookingTypes.CreateBooking(context.Background(), 1516646, data)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestCreateBooking_BodyOmitsEmptyQuestions(t *testing.T) {
	var gotBody string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(`{"data":` + bookingJSON + `}`))
	})

	if _, err := client.BookingTypes.CreateBooking(context.Background(), 1516646, validBookingInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"starts_at":"2025-10-10T11:15:00Z","name":"Jordan Example","email":"jordan@example.com","timezone":"America/New_York"}`
	if gotBody != want {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestCreateBooking_StatusMapping(t *testing.T) {
	tests := []struct {
		status      int
		wantMessage string
	}{
		{status: 403, wantMessage: "permission to create bookings"},
		{status: 409, wantMessage: "timeslot is not available"},
		{status: 422, wantMessage: "Validation Error"},
		{status: 502, wantMessage: "API Error in Create Booking: 502 - Bad Gateway"},
	}

	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})

		_, err := client.BookingTypes.CreateBooking(context.Background(), 1516646, validBookingInput())
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected *APIError, got %T", tt.status, err)
		}
		if apiErr.Status != tt.status || !strings.Contains(apiErr.Message, tt.wantMessage) {
			t.Fatalf("status %d: unexpected error: %+v", tt.status, apiErr)
		}
	}
}
