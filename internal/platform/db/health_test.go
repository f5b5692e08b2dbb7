package db

import (
	"testing"
)

func TestPoolStats_Fields(t *testing.T) {
	stats := &PoolStats{
		TotalConns:      10,
		IdleConns:       5,
		AcquiredConns:   5,
		MaxConns:        20,
		AcquireCount:    100,
		AcquireDuration: "1.5s",
		Healthy:         true,
	}

	if stats.TotalConns != 10 {
		t.Errorf("expected TotalConns 10, got %d", stats.TotalConns)
	}
	if stats.IdleConns != 5 {
		t.Errorf("expected IdleConns 5, got %d", stats.IdleConns)
	}
	if stats.MaxConns != 20 {
		t.Errorf("expected MaxConns 20, got %d", stats.MaxConns)
	}
	if stats.AcquireDuration != "1.5s" {
		t.Errorf("expected AcquireDuration '1.5s', got %q", stats.AcquireDuration)
	}
	if !stats.Healthy {
		t.Error("expected Healthy to be true")
	}
}

func TestPoolStats_UnhealthyWithoutConns(t *testing.T) {
	stats := &PoolStats{TotalConns: 0, Healthy: false}
	if stats.Healthy {
		t.Error("a pool without connections must not report healthy")
	}
}
