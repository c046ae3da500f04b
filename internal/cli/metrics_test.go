package cli

import (
	"testing"
	"time"
)

func TestParseSinceDuration(t *testing.T) {
	now := time.Now()

	got, err := parseSinceDuration("7d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := now.AddDate(0, 0, -7)
	if diff := got.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("7d resolved to %v, want about %v", got, want)
	}

	got, err = parseSinceDuration("24h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = now.Add(-24 * time.Hour)
	if diff := got.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("24h resolved to %v, want about %v", got, want)
	}

	if _, err := parseSinceDuration("xd"); err == nil {
		t.Error("expected error for non-numeric day count")
	}
	if _, err := parseSinceDuration("soon"); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestMetricsCommand_NilCalculator(t *testing.T) {
	origCalc := MetricsCalc
	defer func() { MetricsCalc = origCalc }()
	MetricsCalc = nil

	if err := metricsCmd.RunE(metricsCmd, []string{}); err == nil {
		t.Fatal("expected error when MetricsCalc is nil")
	}
}
