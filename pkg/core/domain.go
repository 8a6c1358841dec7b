// Package core holds the PostStore domain: posts, the keyed store that
// aggregates them and the operations that can be broadcast across it.
package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID uniquely identifies a post.
type ID int64

// String implements fmt.Stringer.
func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseID converts a decoded value (JSON, YAML, CSV or user input) into an ID.
func ParseID(v any) (ID, error) {
	switch n := v.(type) {
	case ID:
		return n, nil
	case int:
		return ID(n), nil
	case int32:
		return ID(n), nil
	case int64:
		return ID(n), nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, fmt.Errorf("id %d overflows", n)
		}
		return ID(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("id %d overflows", n)
		}
		return ID(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("id %v is not an integer", n)
		}
		// float64(math.MaxInt64) rounds up to 2^63, itself out of range.
		if math.IsInf(n, 0) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, fmt.Errorf("id %v overflows", n)
		}
		return ID(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid id %q: %w", n.String(), err)
		}
		return ID(i), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid id %q: %w", n, err)
		}
		return ID(i), nil
	default:
		return 0, fmt.Errorf("unsupported id type %T", v)
	}
}

// Info is the raw descriptor of a single post, as returned by a booru API
// or read back from an archive. The "id" key is mandatory.
type Info map[string]any

// ID extracts the identifier of the described post.
func (i Info) ID() (ID, error) {
	raw, ok := i["id"]
	if !ok {
		return 0, ErrMissingID
	}
	return ParseID(raw)
}

// EventType represents the type of change in an archive.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a post in an archive.
type Event struct {
	Type      EventType
	ID        ID
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer (and lifecycle.Event).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
