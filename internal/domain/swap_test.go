package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseRecordStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    RecordStatus
		wantErr bool
	}{
		{"", RecordCompleted, false},
		{"pending", RecordPending, false},
		{"failed", RecordFailed, false},
		{"settled", "", true},
	}

	for _, tt := range tests {
		got, err := ParseRecordStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseRecordStatus(%q) error = %v, want ErrValidation", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseRecordStatus(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSortSwapsNewestFirstBreaksTiesByID(t *testing.T) {
	at := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	swaps := []*Swap{
		{ID: "2", Timestamp: at},
		{ID: "10", Timestamp: at},
		{ID: "3", Timestamp: at.Add(time.Minute)},
		{ID: "1", Timestamp: at.Add(-time.Minute)},
	}

	SortSwapsNewestFirst(swaps)

	want := []string{"3", "10", "2", "1"}
	for i, s := range swaps {
		if s.ID != want[i] {
			t.Fatalf("position %d: got id %s, want %s", i, s.ID, want[i])
		}
	}
}
