package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, "3000", Config("PORT"))
	assert.Equal(t, 72*time.Hour, Duration("JWT_TTL"))
	assert.True(t, Bool("STRICT_MONTH_PARSING"))
	assert.Equal(t, "8", Decimal("MONTHLY_HOUR_CAP").String())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("TUTORING_RATE", "150.50")
	t.Setenv("LOCK_FINALIZED_REPORTS", "true")
	t.Setenv("REDIS_DB", "2")

	assert.Equal(t, "150.5", Decimal("TUTORING_RATE").String())
	assert.True(t, Bool("LOCK_FINALIZED_REPORTS"))
	assert.Equal(t, 2, Int("REDIS_DB"))
}

func TestDecimalFallsBackToDefault(t *testing.T) {
	t.Setenv("IT_HOURLY_RATE", "a lot")
	assert.Equal(t, "120", Decimal("IT_HOURLY_RATE").String())
}
