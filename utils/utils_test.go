package utils

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{1500 * time.Millisecond, "1.50s"},
		{2*time.Minute + 5*time.Second, "2m:5s"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3h:4m:5s"},
		{26*time.Hour + 7*time.Second, "1d:2h:0m:7s"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.d); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestIsURL(t *testing.T) {
	for src, want := range map[string]bool{
		"https://example.com/a.png": true,
		"http://example.com/a.png":  true,
		"images/a.png":              false,
		"ftp://example.com/a.png":   false,
	} {
		if got := IsURL(src); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", src, got, want)
		}
	}
}

func TestSpinnerOffTerminal(t *testing.T) {
	s := NewSpinner()
	s.enabled = false
	s.Start("working")
	s.Update("still working")
	s.Stop()
	if s.stop != nil {
		t.Error("a disabled spinner should not start")
	}
}
