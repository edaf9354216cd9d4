package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateCronSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		wantErr  bool
	}{
		{"nightly sweep", "15 4 * * *", false},
		{"every six hours", "0 */6 * * *", false},
		{"weekdays only", "30 9 * * 1-5", false},
		{"step values", "*/15 * * * *", false},
		{"empty", "", true},
		{"too few fields", "15 4 *", true},
		{"six fields", "0 15 4 * * *", true},
		{"nonsense", "whenever", true},
		{"minute out of range", "61 4 * * *", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCronSchedule(tt.schedule)
			if tt.wantErr {
				assert.Error(t, err)
				if tt.schedule != "" {
					assert.Contains(t, err.Error(), tt.schedule)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"UTC", "UTC", false},
		{"editorial home timezone", "America/New_York", false},
		{"europe", "Europe/London", false},
		{"empty", "", true},
		{"typo", "America/New_Yrok", true},
		{"UTC offset instead of name", "+05:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimezone(tt.timezone)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateDuration(t *testing.T) {
	min, max := 1*time.Minute, 2*time.Hour

	tests := []struct {
		name    string
		d       time.Duration
		wantErr string
	}{
		{"inside range", 30 * time.Minute, ""},
		{"at minimum", 1 * time.Minute, ""},
		{"at maximum", 2 * time.Hour, ""},
		{"below minimum", 30 * time.Second, "below minimum"},
		{"above maximum", 3 * time.Hour, "exceeds maximum"},
		{"negative", -1 * time.Minute, "below minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDuration(tt.d, min, max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}

	assert.ErrorContains(t, ValidateDuration(time.Minute, max, min), "invalid range")
}

func TestValidateIntRange(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		max     int
		wantErr string
	}{
		{"inside range", 9091, 1024, 65535, ""},
		{"at minimum", 1024, 1024, 65535, ""},
		{"at maximum", 65535, 1024, 65535, ""},
		{"below minimum", 80, 1024, 65535, "below minimum"},
		{"above maximum", 70000, 1024, 65535, "exceeds maximum"},
		{"inverted range", 5, 10, 1, "invalid range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIntRange(tt.value, tt.min, tt.max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Nanosecond))
	assert.NoError(t, ValidatePositiveDuration(10*time.Minute))
	assert.ErrorContains(t, ValidatePositiveDuration(0), "must be positive")
	assert.ErrorContains(t, ValidatePositiveDuration(-time.Second), "must be positive")
}
