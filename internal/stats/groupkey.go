package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// MissingFieldLabel is the sentinel substituted for a metadata field the
// task does not carry. Tasks missing a field bucket under this label rather
// than collapsing into another group.
const MissingFieldLabel = "<absent>"

// GroupKey is an ordered tuple of metadata field values. The empty key groups
// every task into a single bucket.
type GroupKey []string

// Key returns a canonical map-key encoding of the tuple.
func (k GroupKey) Key() string {
	return strings.Join(k, "\x1f")
}

// String renders the tuple for display.
func (k GroupKey) String() string {
	if len(k) == 0 {
		return "(all)"
	}
	return strings.Join([]string(k), "/")
}

// ExtractGroupKey derives the grouping key for one task. One component is
// produced per requested field, in the caller's order; fields are never
// reordered or deduplicated.
func ExtractGroupKey(metadata map[string]any, fields []string) GroupKey {
	if len(fields) == 0 {
		return GroupKey{}
	}
	key := make(GroupKey, 0, len(fields))
	for _, f := range fields {
		v, ok := metadata[f]
		if !ok || v == nil {
			key = append(key, MissingFieldLabel)
			continue
		}
		key = append(key, formatScalar(v))
	}
	return key
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		// JSON numbers decode as float64; render integral values without
		// a trailing ".0".
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}
