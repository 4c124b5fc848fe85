// Package tilt turns sensor and keyboard input into normalized tilt readings.
//
// A normalized reading is a single horizontal axis, roughly in [-1, 1],
// where positive values steer right. Sources here translate from their raw
// conventions (phone platform, arrow keys) into that form.
package tilt

import (
	"fmt"
	"strings"
)

// Platform identifies a device's accelerometer sign convention.
type Platform string

const (
	Android Platform = "android"
	IOS     Platform = "ios"
)

// ParsePlatform accepts a platform name in any letter case.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case Android:
		return Android, nil
	case IOS:
		return IOS, nil
	default:
		return "", fmt.Errorf("tilt: unknown platform %q", s)
	}
}

// Normalize converts a raw accelerometer x reading into a steering value.
// Android reports tilting right as negative x, so its sign is flipped.
func Normalize(raw float64, p Platform) float64 {
	if p == Android {
		return -raw
	}
	return raw
}
