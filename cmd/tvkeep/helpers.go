package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tvkeep/internal/quality"
)

// parseEpisodeList parses a comma-separated episode number list, preserving
// the listed order.
func parseEpisodeList(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("episode list must not be empty")
	}
	parts := strings.Split(value, ",")
	numbers := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		number, err := strconv.Atoi(part)
		if err != nil || number <= 0 {
			return nil, fmt.Errorf("invalid episode number %q", part)
		}
		numbers = append(numbers, number)
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("episode list must not be empty")
	}
	return numbers, nil
}

func knownQualities() string {
	all := quality.All()
	names := make([]string, 0, len(all))
	for _, q := range all {
		names = append(names, q.String())
	}
	return strings.Join(names, ", ")
}

func formatAirDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02")
}
