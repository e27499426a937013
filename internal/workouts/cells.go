package workouts

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cast"
)

// formula error tokens a spreadsheet renders in place of a value
var sentinelTokens = map[string]bool{
	"#ERROR!": true,
	"#N/A":    true,
	"#REF!":   true,
	"#VALUE!": true,
	"#DIV/0!": true,
	"#NAME?":  true,
	"#NUM!":   true,
	"#NULL!":  true,
}

// placeholder movement names meaning "nothing logged in this slot"
var placeholderNames = map[string]bool{
	"-":    true,
	"--":   true,
	"n/a":  true,
	"na":   true,
	"none": true,
	"null": true,
	"nan":  true,
	"tbd":  true,
	"0":    true,
}

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	unitSuffixRegex = regexp.MustCompile(`(?i)\s*(lbs?|kgs?|kilos?|reps?|sets?|x)\.?$`)
)

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
	"3:04 pm",
	"3:04pm",
	"3:04:05 PM",
	"3 PM",
	"3PM",
}

// CleanCell trims a raw cell and turns formula error tokens into the empty (null) value.
func CleanCell(raw string) string {
	cell := strings.TrimSpace(raw)
	if sentinelTokens[strings.ToUpper(cell)] {
		return ""
	}
	return cell
}

// IsPlaceholder reports whether a movement name is blank or a reserved placeholder.
func IsPlaceholder(name string) bool {
	cleaned := strings.ToLower(CleanCell(name))
	return cleaned == "" || placeholderNames[cleaned]
}

// NormalizeName collapses inner whitespace and trims a free-text name.
func NormalizeName(name string) string {
	return whitespaceRegex.ReplaceAllString(CleanCell(name), " ")
}

// ParseNumber coerces a cell to a number. Blank, sentinel and unparseable
// cells return false, they never fail the row.
func ParseNumber(raw string) (float64, bool) {
	cell := CleanCell(raw)
	if cell == "" {
		return 0, false
	}

	cell = strings.ReplaceAll(cell, ",", "")
	cell = strings.TrimSpace(unitSuffixRegex.ReplaceAllString(cell, ""))

	v, err := cast.ToFloat64E(cell)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// ParseDate parses a date cell in UTC. Invalid dates return false.
func ParseDate(raw string) (time.Time, bool) {
	cell := CleanCell(raw)
	if cell == "" {
		return time.Time{}, false
	}

	t, err := dateparse.ParseIn(cell, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// ParseClock parses a start time cell, either a bare clock time or a full timestamp.
// Bare clock times are returned on the zero date.
func ParseClock(raw string) (time.Time, bool) {
	cell := CleanCell(raw)
	if cell == "" {
		return time.Time{}, false
	}

	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, cell, time.UTC); err == nil {
			return t, true
		}
	}

	if t, err := dateparse.ParseIn(cell, time.UTC); err == nil {
		return t, true
	}

	return time.Time{}, false
}
