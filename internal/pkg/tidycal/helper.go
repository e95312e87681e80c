package tidycal

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`(?i)^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[A-Za-z]{2,}$`)
	datePattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// formatTimestamp renders a UTC RFC 3339 timestamp without fractional seconds,
// the format the TidyCal API expects for booking and timeslot times.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// formatDate renders the date-only form used by booking list filters.
func formatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// joinParams assembles a query string from already-encoded key=value pairs,
// keeping the order the operation declared.
func joinParams(params []string) string {
	return strings.Join(params, "&")
}

func statusText(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown Status"
}
