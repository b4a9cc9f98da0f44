package services

import (
	"log/slog"
	"os"
	"sync"
	"time"
)

var tzOnce sync.Once
var tz *time.Location

// OperatorTZ is the timezone payment confirmations are stamped in, from the
// TIMEZONE env var. Falls back to UTC on a bad or missing value.
func OperatorTZ() *time.Location {
	tzOnce.Do(func() {
		name := os.Getenv("TIMEZONE")
		if name == "" {
			tz = time.UTC
			return
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			slog.Warn("invalid TIMEZONE, using UTC", "value", name, "error", err)
			tz = time.UTC
			return
		}
		tz = loc
	})
	return tz
}
