package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{"slash padded", "01/02/2023", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"slash unpadded", "3/4/2023", time.Date(2023, 3, 4, 0, 0, 0, 0, time.UTC), true},
		{"iso", "2023-06-15", time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), true},
		{"iso unpadded", "2023-6-5", time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC), true},
		{"various upper", "VARIOUS", time.Time{}, false},
		{"various mixed case", "Various", time.Time{}, false},
		{"various embedded", "VARIOUS LOTS", time.Time{}, false},
		{"empty", "", time.Time{}, false},
		{"no delimiter", "20230615", time.Time{}, false},
		{"garbage with slash", "ab/cd/efgh", time.Time{}, false},
		{"whitespace around", " 01/02/2023 ", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexibleDate(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseFlexibleDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseFlexibleDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsVariousDate(t *testing.T) {
	if !IsVariousDate("VARIOUS") || !IsVariousDate("various") {
		t.Error("expected VARIOUS markers to be recognized in any case")
	}
	if IsVariousDate("01/02/2023") {
		t.Error("regular date should not be flagged as various")
	}
}
