package pkg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDuration parses a workout duration string into total seconds.
// Accepted forms: "H:MM:SS", "MM:SS", or a bare number of seconds.
func ParseDuration(duration string) (int, error) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, fmt.Errorf("empty duration")
	}

	parts := strings.Split(duration, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid duration [%s]: too many segments", duration)
	}

	segments := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("invalid duration [%s]: %w", duration, err)
		}
		if n < 0 {
			return 0, fmt.Errorf("invalid duration [%s]: negative segment", duration)
		}
		segments = append(segments, n)
	}

	switch len(segments) {
	case 1:
		return segments[0], nil
	case 2:
		return segments[0]*60 + segments[1], nil
	default:
		return segments[0]*3600 + segments[1]*60 + segments[2], nil
	}
}

// FormatDuration renders total seconds as "H:MM:SS", or "M:SS" when
// there is no hour component.
func FormatDuration(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// CalculatePace returns the pace in seconds per kilometer, rounded to the
// nearest second. A non-positive distance yields 0 instead of a division
// by zero.
func CalculatePace(distanceKm float64, durationSeconds int) int {
	if distanceKm <= 0 {
		return 0
	}
	return int(math.Round(float64(durationSeconds) / distanceKm))
}

// FormatPace renders seconds-per-km as "M:SS/km".
func FormatPace(secondsPerKm int) string {
	return FormatDuration(secondsPerKm) + "/km"
}
