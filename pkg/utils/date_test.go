package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODate(t *testing.T) {
	got, err := ParseISODate("2025-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseISODate("01/01/2025")
	assert.Error(t, err)
}

func TestFixedDateProvider(t *testing.T) {
	day := time.Date(2026, time.October, 18, 23, 59, 0, 0, time.UTC)
	p := FixedDateProvider{Date: day}
	assert.Equal(t, "2026-10-18", FormatISODate(p.Today()))
}

func TestStringOr(t *testing.T) {
	assert.Equal(t, "a", StringOr("a", "b"))
	assert.Equal(t, "b", StringOr("", "b"))
}
