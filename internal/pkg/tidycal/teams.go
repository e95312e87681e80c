package tidycal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// TeamsService operates on teams the caller belongs to, their members and
// their team-owned booking types.
type TeamsService struct {
	client *Client
}

func (s *TeamsService) List(ctx context.Context, page int) ([]Team, error) {
	const op = "list teams"

	if page <= 0 {
		return nil, s.client.wrapError(op, invalidField("page", "'page' must be a positive number"))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, "/teams", "page="+strconv.Itoa(page), nil)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	resp, body, err := s.client.do(req)
	if err != nil {
		return nil, s.client.wrapError(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.client.wrapError(op, genericAPIError("List Teams", resp.StatusCode))
	}

	var out struct {
		Data []Team `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

func (s *TeamsService) Get(ctx context.Context, teamID int) (*Team, error) {
	const op = "get team"

	if teamID <= 0 {
		return nil, s.client.wrapError(op, invalidField("team_id", "team ID is required and must be a positive number"))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, fmt.Sprintf("/teams/%d", teamID), "", nil)
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to view this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team not found"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Get Team", resp.StatusCode))
		}
	}

	var out struct {
		Data Team `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return &out.Data, nil
}

// ListTeamBookingsOptions filter team bookings. TeamID is required; zero
// values of the remaining fields are omitted from the query string.
type ListTeamBookingsOptions struct {
	TeamID    int
	Page      int
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Email     string
	HostID    int
}

func (s *TeamsService) ListBookings(ctx context.Context, opts ListTeamBookingsOptions) ([]Booking, error) {
	const op = "list team bookings"

	if opts.TeamID <= 0 {
		return nil, s.client.wrapError(op, invalidField("team_id", "team ID is required and must be a positive number"))
	}
	if opts.StartDate != "" && !datePattern.MatchString(opts.StartDate) {
		return nil, s.client.wrapError(op, invalidField("start_date", "start date must be in YYYY-MM-DD format"))
	}
	if opts.EndDate != "" && !datePattern.MatchString(opts.EndDate) {
		return nil, s.client.wrapError(op, invalidField("end_date", "end date must be in YYYY-MM-DD format"))
	}
	if opts.Email != "" && !isValidEmail(opts.Email) {
		return nil, s.client.wrapError(op, invalidField("email", "invalid email format"))
	}

	var params []string
	if opts.Page > 0 {
		params = append(params, "page="+strconv.Itoa(opts.Page))
	}
	if opts.StartDate != "" {
		params = append(params, "start_date="+opts.StartDate)
	}
	if opts.EndDate != "" {
		params = append(params, "end_date="+opts.EndDate)
	}
	if opts.Email != "" {
		params = append(params, "email="+url.QueryEscape(opts.Email))
	}
	if opts.HostID > 0 {
		params = append(params, "host_id="+strconv.Itoa(opts.HostID))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/bookings", opts.TeamID), joinParams(params), nil)
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to view this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team not found"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("List Team Bookings", resp.StatusCode))
		}
	}

	var out struct {
		Data []Booking `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

// ListUsers fetches the members of a team. A page of 0 means the first page.
func (s *TeamsService) ListUsers(ctx context.Context, teamID, page int) ([]TeamUser, error) {
	const op = "list team users"

	if teamID <= 0 {
		return nil, s.client.wrapError(op, invalidField("team_id", "team ID is required and must be a positive number"))
	}

	var params []string
	if page > 0 {
		params = append(params, "page="+strconv.Itoa(page))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/users", teamID), joinParams(params), nil)
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to view this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team not found"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("List Team Users", resp.StatusCode))
		}
	}

	var out struct {
		Data []TeamUser `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

type AddTeamUserInput struct {
	TeamID   int
	Email    string
	RoleName string // "admin" or "user"; defaults to "user"
}

// AddUser invites a user to a team by email.
func (s *TeamsService) AddUser(ctx context.Context, input AddTeamUserInput) (*AddTeamUserResult, error) {
	const op = "add team user"

	if input.TeamID <= 0 {
		return nil, s.client.wrapError(op, invalidField("team_id", "team ID is required and must be a positive number"))
	}
	if input.Email == "" {
		return nil, s.client.wrapError(op, invalidField("email", "email address is missing or invalid"))
	}
	if !isValidEmail(input.Email) {
		return nil, s.client.wrapError(op, invalidField("email", "invalid email format"))
	}
	role := input.RoleName
	if role == "" {
		role = "user"
	}
	if role != "admin" && role != "user" {
		return nil, s.client.wrapError(op, invalidField("role_name", "invalid role_name: must be 'admin' or 'user'"))
	}

	body := payload{
		{"email", input.Email},
		{"role_name", role},
	}
	req, err := s.client.newRequest(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/users", input.TeamID), "", body)
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to add users to this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team not found"))
		case http.StatusUnprocessableEntity:
			return nil, s.client.wrapError(op, newAPIError(422, "Validation Error - User already invited or already a member"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Add Team User", resp.StatusCode))
		}
	}

	// This endpoint returns its payload directly, without the data envelope.
	var out AddTeamUserResult
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return &out, nil
}

// RemoveUser removes a member from a team. Validation happens before the
// wrapped request path, so validation failures surface without operation
// context attached.
func (s *TeamsService) RemoveUser(ctx context.Context, teamID, teamUserID int) (*TeamUserRemoval, error) {
	const op = "remove team user"

	if teamID <= 0 {
		return nil, invalidField("team_id", "team ID is required and must be a positive number")
	}
	if teamUserID <= 0 {
		return nil, invalidField("team_user_id", "team user ID is required and must be a positive number")
	}

	req, err := s.client.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/teams/%d/users/%d", teamID, teamUserID), "", nil)
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to remove users from this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team or team user not found"))
		case http.StatusUnprocessableEntity:
			return nil, s.client.wrapError(op, newAPIError(422, "Validation Error - User not found in team"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Remove Team User", resp.StatusCode))
		}
	}

	var out TeamUserRemoval
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return &out, nil
}

// ListBookingTypes fetches the booking types owned by a team. A page of 0
// means the first page. Validation happens before the wrapped request path.
func (s *TeamsService) ListBookingTypes(ctx context.Context, teamID, page int) ([]BookingType, error) {
	const op = "list team booking types"

	if teamID <= 0 {
		return nil, invalidField("team_id", "team ID is required and must be a positive number")
	}

	var params []string
	if page > 0 {
		params = append(params, "page="+strconv.Itoa(page))
	}

	req, err := s.client.newRequest(ctx, http.MethodGet, fmt.Sprintf("/teams/%d/booking-types", teamID), joinParams(params), nil)
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to view this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team not found"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("List Team Booking Types", resp.StatusCode))
		}
	}

	var out struct {
		Data []BookingType `json:"data"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, s.client.wrapError(op, err)
	}
	return out.Data, nil
}

// CreateTeamBookingTypeInput mirrors CreateBookingTypeInput for team-owned
// booking types. PrivateBooking is sent as "private" in the outgoing body.
type CreateTeamBookingTypeInput struct {
	TeamID                             int
	Title                              string
	Description                        string
	DurationMinutes                    int
	URLSlug                            string
	PaddingMinutes                     *int
	LatestAvailabilityDays             *int
	PrivateBooking                     *bool
	MaxBookings                        *int
	MaxGuestInvitesPerBooker           *int
	DisplaySeatsRemaining              *bool
	BookingAvailabilityIntervalMinutes *int
	RedirectURL                        *string
	ApprovalRequired                   *bool
	BookingTypeCategoryID              *int
}

// CreateBookingType creates a booking type owned by a team. It shares the
// standalone creation validator and payload pruning; validation happens
// before the wrapped request path.
func (s *TeamsService) CreateBookingType(ctx context.Context, input CreateTeamBookingTypeInput) (*BookingType, error) {
	const op = "create team booking type"

	if input.TeamID <= 0 {
		return nil, invalidField("team_id", "team ID is required and must be a positive number")
	}
	fields := CreateBookingTypeInput{
		Title:                              input.Title,
		Description:                        input.Description,
		DurationMinutes:                    input.DurationMinutes,
		URLSlug:                            input.URLSlug,
		PaddingMinutes:                     input.PaddingMinutes,
		LatestAvailabilityDays:             input.LatestAvailabilityDays,
		Private:                            input.PrivateBooking,
		MaxBookings:                        input.MaxBookings,
		MaxGuestInvitesPerBooker:           input.MaxGuestInvitesPerBooker,
		DisplaySeatsRemaining:              input.DisplaySeatsRemaining,
		BookingAvailabilityIntervalMinutes: input.BookingAvailabilityIntervalMinutes,
		RedirectURL:                        input.RedirectURL,
		ApprovalRequired:                   input.ApprovalRequired,
		BookingTypeCategoryID:              input.BookingTypeCategoryID,
	}
	if err := validateBookingTypeInput(fields); err != nil {
		return nil, err
	}

	req, err := s.client.newRequest(ctx, http.MethodPost, fmt.Sprintf("/teams/%d/booking-types", input.TeamID), "", bookingTypePayload(fields))
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
			return nil, s.client.wrapError(op, newAPIError(403, "Forbidden - User does not have permission to create booking types for this team"))
		case http.StatusNotFound:
			return nil, s.client.wrapError(op, newAPIError(404, "Not Found - Team not found"))
		case http.StatusUnprocessableEntity:
			return nil, s.client.wrapError(op, newAPIError(422, "Validation Error - Invalid input data"))
		default:
			return nil, s.client.wrapError(op, genericAPIError("Create Team Booking Type", resp.StatusCode))
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
