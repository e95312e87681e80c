package tidycal

import "fmt"

const (
	maxTitleLength = 255
	maxNameLength  = 191
	maxURLLength   = 60000
)

// CreateBookingTypeInput carries the fields for booking type creation, shared
// by standalone and team-scoped creation. Optional fields are pointers so an
// explicit false/0/"" survives payload pruning.
type CreateBookingTypeInput struct {
	Title                              string
	Description                        string
	DurationMinutes                    int
	URLSlug                            string
	PaddingMinutes                     *int
	LatestAvailabilityDays             *int
	Private                            *bool
	MaxBookings                        *int
	MaxGuestInvitesPerBooker           *int
	DisplaySeatsRemaining              *bool
	BookingAvailabilityIntervalMinutes *int
	RedirectURL                        *string
	ApprovalRequired                   *bool
	BookingTypeCategoryID              *int
}

// validateBookingTypeInput checks fields in declaration order and stops at
// the first violation. Optional rules apply only when the field is set.
func validateBookingTypeInput(data CreateBookingTypeInput) error {
	if data.Title == "" {
		return missingField("title")
	}
	if data.Description == "" {
		return missingField("description")
	}
	if data.DurationMinutes == 0 {
		return missingField("duration_minutes")
	}
	if data.URLSlug == "" {
		return missingField("url_slug")
	}

	if len(data.Title) > maxTitleLength {
		return invalidField("title", fmt.Sprintf("'title' must be at most %d characters", maxTitleLength))
	}
	if data.DurationMinutes < 1 {
		return invalidField("duration_minutes", "'duration_minutes' must be a positive number")
	}
	if len(data.URLSlug) > maxTitleLength {
		return invalidField("url_slug", fmt.Sprintf("'url_slug' must be at most %d characters", maxTitleLength))
	}

	if data.PaddingMinutes != nil && *data.PaddingMinutes < 0 {
		return invalidField("padding_minutes", "'padding_minutes' must be a number greater than or equal to 0")
	}
	if data.LatestAvailabilityDays != nil &&
		(*data.LatestAvailabilityDays < 0 || *data.LatestAvailabilityDays > 36500) {
		return invalidField("latest_availability_days", "'latest_availability_days' must be between 0 and 36500")
	}
	if data.MaxBookings != nil && *data.MaxBookings < 1 {
		return invalidField("max_bookings", "'max_bookings' must be a number greater than or equal to 1")
	}
	if data.MaxGuestInvitesPerBooker != nil &&
		(*data.MaxGuestInvitesPerBooker < 0 || *data.MaxGuestInvitesPerBooker > 10) {
		return invalidField("max_guest_invites_per_booker", "'max_guest_invites_per_booker' must be between 0 and 10")
	}
	if data.BookingAvailabilityIntervalMinutes != nil &&
		(*data.BookingAvailabilityIntervalMinutes < 15 || *data.BookingAvailabilityIntervalMinutes > 1440) {
		return invalidField("booking_availability_interval_minutes", "'booking_availability_interval_minutes' must be between 15 and 1440 minutes")
	}
	if data.RedirectURL != nil && len(*data.RedirectURL) > maxURLLength {
		return invalidField("redirect_url", fmt.Sprintf("'redirect_url' must not exceed %d characters", maxURLLength))
	}
	if data.BookingTypeCategoryID != nil && *data.BookingTypeCategoryID < 0 {
		return invalidField("booking_type_category_id", "'booking_type_category_id' must be a positive integer if provided")
	}

	return nil
}

// bookingTypePayload builds the pruned creation body shared by both booking
// type creation endpoints.
func bookingTypePayload(data CreateBookingTypeInput) payload {
	return buildPayload(payload{
		{"title", data.Title},
		{"description", data.Description},
		{"duration_minutes", data.DurationMinutes},
		{"url_slug", data.URLSlug},
		{"padding_minutes", opt(data.PaddingMinutes)},
		{"latest_availability_days", opt(data.LatestAvailabilityDays)},
		{"private", opt(data.Private)},
		{"max_bookings", opt(data.MaxBookings)},
		{"max_guest_invites_per_booker", opt(data.MaxGuestInvitesPerBooker)},
		{"display_seats_remaining", opt(data.DisplaySeatsRemaining)},
		{"booking_availability_interval_minutes", opt(data.BookingAvailabilityIntervalMinutes)},
		{"redirect_url", opt(data.RedirectURL)},
		{"approval_required", opt(data.ApprovalRequired)},
		{"booking_type_category_id", opt(data.BookingTypeCategoryID)},
	})
}
