package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jo@example.com", true},
		{"first.last@sub.example.co", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"trailing@domain", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidEmail(tt.email), "email %q", tt.email)
	}
}

func TestValidTimeOfDay(t *testing.T) {
	assert.True(t, ValidTimeOfDay("09:30"))
	assert.True(t, ValidTimeOfDay("09:30:00"))
	assert.False(t, ValidTimeOfDay("25:00"))
	assert.False(t, ValidTimeOfDay("9am"))
	assert.False(t, ValidTimeOfDay(""))
}

func TestPastDate(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")
	today := time.Now().UTC().Format("2006-01-02")

	assert.True(t, PastDate(yesterday))
	assert.False(t, PastDate(today), "today is not in the past")
	assert.False(t, PastDate(tomorrow))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22", 4)
	assert.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter22"))
	assert.False(t, VerifyPassword(hash, "hunter23"))
}
