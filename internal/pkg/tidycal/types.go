package tidycal

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entity representations returned by the TidyCal API. All entities are
// remote-owned; each response is decoded into a fresh value and returned,
// never cached or mutated in place.

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TeamUser struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Contact struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	IPAddress   string    `json:"ip_address"`
	Timezone    string    `json:"timezone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Payment struct {
	ID        int       `json:"id"`
	PaymentID string    `json:"payment_id"`
	BookingID int       `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Answer holds a booking question answer, which the API returns either as
// plain text or as an array of text depending on the question type.
type Answer struct {
	Text   string
	Values []string
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Text = s
		a.Values = nil
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		a.Text = ""
		a.Values = values
		return nil
	}
	return fmt.Errorf("answer must be text or an array of text")
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Values != nil {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Text)
}

type Question struct {
	ID        int       `json:"id"`
	BookingID int       `json:"booking_id"`
	Question  string    `json:"question"`
	Answer    Answer    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Booking struct {
	ID            int        `json:"id"`
	ContactID     int        `json:"contact_id"`
	BookingTypeID int        `json:"booking_type_id"`
	StartsAt      time.Time  `json:"starts_at"`
	EndsAt        time.Time  `json:"ends_at"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Timezone      string     `json:"timezone"`
	MeetingURL    *string    `json:"meeting_url"`
	MeetingID     *string    `json:"meeting_id"`
	Questions     []Question `json:"questions"`
	Contact       *Contact   `json:"contact"`
	Payment       *Payment   `json:"payment"`
}

type BookingType struct {
	ID                      int        `json:"id"`
	UserID                  int        `json:"user_id"`
	Title                   string     `json:"title"`
	Description             string     `json:"description"`
	DurationMinutes         int        `json:"duration_minutes"`
	PaddingMinutes          int        `json:"padding_minutes"`
	DisabledAt              *time.Time `json:"disabled_at"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	URLSlug                 string     `json:"url_slug"`
	Price                   float64    `json:"price"`
	Private                 bool       `json:"private"`
	LatestAvailabilityDays  int        `json:"latest_availability_days"`
	RedirectURL             *string    `json:"redirect_url"`
	BookingThresholdMinutes int        `json:"booking_threshold_minutes"`
	MaxBookings             int        `json:"max_bookings"`
	URL                     string     `json:"url"`
}

// Timeslot is a candidate start/end window for a booking type. Derived by
// the API, never persisted.
type Timeslot struct {
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	AvailableBookings int       `json:"available_bookings"`
}

// AddTeamUserResult is returned directly by the add-user endpoint, without
// the usual data envelope.
type AddTeamUserResult struct {
	Message    string `json:"message"`
	TeamUserID int    `json:"team_user_id"`
}

// TeamUserRemoval is returned directly by the remove-user endpoint.
type TeamUserRemoval struct {
	Message string `json:"message"`
}
