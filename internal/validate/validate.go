package validate

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// mileage ("10k"), gear type ("Auto"), fuel ("Petrol")
	reLabel = regexp.MustCompile(`^[A-Za-z0-9 .,+/_-]{0,32}$`)
	reName  = regexp.MustCompile(`^[\p{L}\p{N} .,'&()+/_-]{1,100}$`)
)

// MaxPrice caps daily/monthly prices to keep obviously broken input out of the store.
const MaxPrice = 10_000_000

// ID validates a car identifier. Identifiers are UUIDs assigned by the store.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if _, err := uuid.Parse(s); err != nil {
		return s, false
	}
	return s, true
}

// Name validates a displayable car name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	return s, reName.MatchString(s)
}

// Label validates the short free-text attributes of a car; empty is allowed.
func Label(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reLabel.MatchString(s)
}

func Price(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= 0 && f <= MaxPrice
}

// ThumbnailURL accepts an empty value or an absolute http(s) URL.
func ThumbnailURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 1024 {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	return s, u.Scheme == "http" || u.Scheme == "https"
}

// Viewport parses a viewport width in CSS pixels.
func Viewport(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 10000 {
		return 0, false
	}
	return n, true
}

// Page parses a zero-based carousel page; anything malformed is page 0.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
