package jobs

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"chipbook/services"
)

const defaultStaleDebtDays = 7

// StartStaleDebtScheduler reminds the operator about debts that have been
// open longer than STALE_DEBT_DAYS: once at boot, then daily.
func StartStaleDebtScheduler() {
	days := defaultStaleDebtDays
	if raw := os.Getenv("STALE_DEBT_DAYS"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			days = v
		} else {
			slog.Warn("invalid STALE_DEBT_DAYS, using default", "value", raw, "default", defaultStaleDebtDays)
		}
	}
	maxAge := time.Duration(days) * 24 * time.Hour

	go runStaleDebtLoop(24*time.Hour, maxAge, services.ReportStaleDebts)
}

func runStaleDebtLoop(interval, maxAge time.Duration, report func(time.Duration) error) {
	if err := report(maxAge); err != nil {
		slog.Error("stale debt report failed", "error", err)
	}

	ticker := time.NewTicker(interval)
	for {
		<-ticker.C
		if err := report(maxAge); err != nil {
			slog.Error("stale debt report failed", "error", err)
		}
	}
}
