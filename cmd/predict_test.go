package cmd

import (
	"testing"

	"algooee/internal/submission"

	"github.com/stretchr/testify/assert"
)

func TestParseFormLine(t *testing.T) {
	form, ok := parseFormLine("  INE002A01018  2024-01-01 2024-06-30 ")
	assert.True(t, ok)
	assert.Equal(t, submission.Form{ISIN: "INE002A01018", StartDate: "2024-01-01", EndDate: "2024-06-30"}, form)

	form, ok = parseFormLine("INE002A01018")
	assert.True(t, ok)
	assert.Equal(t, submission.Form{ISIN: "INE002A01018"}, form)

	_, ok = parseFormLine("   ")
	assert.False(t, ok)
}
