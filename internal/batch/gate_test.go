package batch

import (
	"testing"
	"time"
)

func TestParseCron(t *testing.T) {
	tests := []struct {
		expr    string
		wantErr bool
	}{
		{"0 22 * * *", false},   // 10 PM daily
		{"0 12 * * 1-5", false}, // noon weekdays
		{"*/5 * * * *", false},  // every 5 minutes
		{"invalid", true},
	}

	for _, tt := range tests {
		_, err := ParseCron(tt.expr)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCron(%q) error = %v, wantErr %v", tt.expr, err, tt.wantErr)
		}
	}
}

func TestGate_NextRun(t *testing.T) {
	gate, err := NewGate("0 22 * * *")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)
	next := gate.NextRun(now)
	if next.Hour() != 22 {
		t.Errorf("NextRun hour = %d, want 22", next.Hour())
	}
}

func TestGate_ShouldRun(t *testing.T) {
	gate, err := NewGate("*/5 * * * *")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 8, 31, 10, 0, 30, 0, time.UTC)

	// No previous run: due
	if !gate.ShouldRun(now) {
		t.Error("first trigger should be due")
	}

	gate.MarkRunning()
	if gate.ShouldRun(now) {
		t.Error("in-flight run should suppress trigger")
	}

	gate.MarkComplete(now)
	if gate.ShouldRun(now.Add(time.Minute)) {
		t.Error("should not re-trigger before next schedule point")
	}
	if !gate.ShouldRun(now.Add(6 * time.Minute)) {
		t.Error("should trigger after the next schedule point")
	}
}
