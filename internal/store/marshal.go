package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/spvbuild/internal/invocation"
)

// marshalList converts a name list to canonical JSON TEXT for storage.
func marshalList(names []string) (string, error) {
	if names == nil {
		names = []string{}
	}
	data, err := invocation.MarshalCanonical(names)
	if err != nil {
		return "", fmt.Errorf("marshal list: %w", err)
	}
	return string(data), nil
}

// unmarshalList parses a stored name list. Always returns a non-nil slice.
func unmarshalList(data string) ([]string, error) {
	names := []string{}
	if data == "" {
		return names, nil
	}
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

const timeLayout = time.RFC3339Nano

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse created_at %q: %w", s, err)
	}
	return t, nil
}
