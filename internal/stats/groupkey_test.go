package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGroupKey_PreservesRequestedOrder(t *testing.T) {
	metadata := map[string]any{"category": "car", "weather": "rain"}

	key := ExtractGroupKey(metadata, []string{"weather", "category"})
	assert.Equal(t, GroupKey{"rain", "car"}, key)

	// Repeated fields are not deduplicated.
	key = ExtractGroupKey(metadata, []string{"category", "category"})
	assert.Equal(t, GroupKey{"car", "car"}, key)
}

func TestExtractGroupKey_MissingFieldSentinel(t *testing.T) {
	metadata := map[string]any{"category": "car"}

	key := ExtractGroupKey(metadata, []string{"category", "weather"})
	assert.Equal(t, GroupKey{"car", MissingFieldLabel}, key)

	// A nil scalar buckets with the sentinel, not with another group.
	key = ExtractGroupKey(map[string]any{"weather": nil}, []string{"weather"})
	assert.Equal(t, GroupKey{MissingFieldLabel}, key)
}

func TestExtractGroupKey_EmptyRequest(t *testing.T) {
	key := ExtractGroupKey(map[string]any{"category": "car"}, nil)
	assert.Empty(t, key)
	assert.Equal(t, "(all)", key.String())
}

func TestExtractGroupKey_ScalarFormatting(t *testing.T) {
	metadata := map[string]any{
		"round":    float64(3), // JSON numbers decode as float64
		"priority": 7,
		"flagged":  true,
	}

	key := ExtractGroupKey(metadata, []string{"round", "priority", "flagged"})
	assert.Equal(t, GroupKey{"3", "7", "true"}, key)
}

func TestGroupKey_DistinctTuplesDistinctKeys(t *testing.T) {
	a := GroupKey{"x", "y"}
	b := GroupKey{"xy", ""}
	assert.NotEqual(t, a.Key(), b.Key())
}
