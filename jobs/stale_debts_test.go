package jobs

import (
	"testing"
	"time"
)

func TestStaleDebtLoopReportsAtBoot(t *testing.T) {
	called := make(chan time.Duration, 1)
	go runStaleDebtLoop(time.Hour, 7*24*time.Hour, func(maxAge time.Duration) error {
		called <- maxAge
		return nil
	})

	select {
	case got := <-called:
		if got != 7*24*time.Hour {
			t.Fatalf("maxAge = %v, want %v", got, 7*24*time.Hour)
		}
	case <-time.After(time.Second):
		t.Fatal("no report before the first tick")
	}
}
