// Package catalog turns the hadith content index into prerender routes and
// an XML sitemap.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrIndexMissing means the index file does not exist.
	ErrIndexMissing = errors.New("content index not found")
	// ErrIndexMalformed means the index exists but is not a JSON array of objects.
	ErrIndexMalformed = errors.New("content index malformed")
)

// Entry is one content index record. Either identifier may be empty.
type Entry struct {
	ID  string
	UID string
}

// Slug returns the canonical slug: UID when set, otherwise ID. ok is false
// when neither is set.
func (e Entry) Slug() (slug string, ok bool) {
	if e.UID != "" {
		return e.UID, true
	}
	if e.ID != "" {
		return e.ID, true
	}
	return "", false
}

// LoadIndex reads and parses the index at path.
func LoadIndex(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexMissing, path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrIndexMalformed, path, err)
	}

	entries, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseIndex parses an index document. The top level must be an array and
// every non-null element an object. id and uid may be JSON strings or
// numbers; any other type counts as absent.
func ParseIndex(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrIndexMalformed)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexMalformed, err)
	}

	entries := make([]Entry, 0, len(raw))
	for i, elem := range raw {
		if string(elem) == "null" {
			continue
		}

		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrIndexMalformed, i)
		}

		entries = append(entries, Entry{
			ID:  identifier(obj["id"]),
			UID: identifier(obj["uid"]),
		})
	}
	return entries, nil
}

func identifier(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return ""
	}
}
