package sqlite

import (
	"encoding/json"
	"fmt"
	"strings"
)

// encodeList turns a string slice into the JSON text stored in list columns.
// A nil slice is stored as "[]" so reads never have to special-case NULL.
func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList is the inverse of encodeList. Blank text decodes to an empty slice.
func decodeList(column, raw string) ([]string, error) {
	items := []string{}
	if strings.TrimSpace(raw) == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", column, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
// modernc.org/sqlite surfaces these as plain errors with SQLite's message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
