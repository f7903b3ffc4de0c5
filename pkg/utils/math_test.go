package utils

import (
	"math"
	"testing"
	"unicode/utf8"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		v, lo, hi  float64
		expected   float64
	}{
		{"inside range", 50, 0, 100, 50},
		{"below range", -5, 0, 100, 0},
		{"above range", 120, 0, 100, 100},
		{"at lower bound", 0, 0, 100, 0},
		{"at upper bound", 100, 0, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.expected)
			}
		})
	}
}

func TestMeanAndStdDev(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]int{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := StdDev([]int{5}); got != 0 {
		t.Errorf("StdDev of single value = %v, want 0", got)
	}
	got := StdDev([]int{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("StdDev = %v, want 2.0", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 0); got != "hello" {
		t.Errorf("Truncate with maxLen 0 = %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate = %q, want %q", got, "hello...")
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("Truncate = %q, want %q", got, "hi")
	}
	if got := Truncate("見出しの長いテキスト", 4); got != "見出しの..." {
		t.Errorf("Truncate = %q, want %q", got, "見出しの...")
	}
	if got := Truncate("日本語", 3); got != "日本語" {
		t.Errorf("Truncate = %q, want %q", got, "日本語")
	}
	if got := Truncate("résumé text", 6); !utf8.ValidString(got) {
		t.Errorf("Truncate produced invalid UTF-8: %q", got)
	}
}
