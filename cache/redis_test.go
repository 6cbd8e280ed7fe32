package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryKey(t *testing.T) {
	assert.Equal(t, "summary:financial:2025-03", SummaryKey("financial", "2025-03"))
	assert.Equal(t, "summary:enrollments", SummaryKey("enrollments"))
}

func TestDisabledCacheIsNoop(t *testing.T) {
	RDB = nil
	ctx := context.Background()

	SetJSON(ctx, SummaryKey("x"), map[string]int{"a": 1})
	var out map[string]int
	assert.False(t, GetJSON(ctx, SummaryKey("x"), &out))
	assert.Nil(t, out)
	InvalidateSummaries(ctx)
}
