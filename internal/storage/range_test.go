package storage

import (
	"testing"
	"time"
)

func TestDayBounds(t *testing.T) {
	from, to, err := DayBounds("2024-02-26", "2024-03-03")
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if want := time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC); !to.Equal(want) {
		t.Errorf("to = %v, want %v", to, want)
	}
}

func TestDayBoundsErrors(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
	}{
		{"bad start", "2024-13-01", "2024-01-02"},
		{"bad end", "2024-01-01", "tomorrow"},
		{"reversed", "2024-01-05", "2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DayBounds(tt.start, tt.end); err == nil {
				t.Error("expected error")
			}
		})
	}
}
