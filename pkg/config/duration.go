package config

import (
	"fmt"
	"time"
)

// ValidateDurationRange checks that d falls inside [min, max]. Used for
// operator-supplied timeouts where both a too-small and a too-large value
// indicate a misconfigured deployment.
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if d < min {
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}
