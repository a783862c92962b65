package clock

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	clk := New(ny, time.Monday)

	tests := []struct {
		name    string
		raw     string
		want    Date
		wantErr bool
	}{
		{
			name: "rfc3339 utc converts to reference zone",
			raw:  "2024-06-02T01:30:00Z",
			want: Date{2024, time.June, 1},
		},
		{
			name: "rfc3339 with offset",
			raw:  "2024-06-01T22:00:00-04:00",
			want: Date{2024, time.June, 1},
		},
		{
			name: "rfc3339 fractional seconds",
			raw:  "2024-06-01T10:00:00.123Z",
			want: Date{2024, time.June, 1},
		},
		{
			name: "bare date interpreted in reference zone",
			raw:  "2024-06-01",
			want: Date{2024, time.June, 1},
		},
		{
			name: "datetime without zone",
			raw:  "2024-06-01 23:59:59",
			want: Date{2024, time.June, 1},
		},
		{
			name: "locale formatted date",
			raw:  "06/01/2024",
			want: Date{2024, time.June, 1},
		},
		{
			name: "locale date without leading zeros",
			raw:  "6/1/2024",
			want: Date{2024, time.June, 1},
		},
		{
			name: "long form date",
			raw:  "June 1, 2024",
			want: Date{2024, time.June, 1},
		},
		{
			name: "trailing text after iso timestamp",
			raw:  "2024-06-01T10:00:00Z (reviewed)",
			want: Date{2024, time.June, 1},
		},
		{
			name: "surrounding whitespace",
			raw:  "  2024-06-01  ",
			want: Date{2024, time.June, 1},
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "garbage",
			raw:     "not a date",
			wantErr: true,
		},
		{
			name:    "numeric junk",
			raw:     "1718000000",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := clk.Normalize(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNormalizeNeverFallsBackToNow(t *testing.T) {
	clk := New(time.UTC, time.Monday)

	_, err := clk.Normalize("???")
	if err == nil {
		t.Fatal("expected unparseable timestamp to return an error")
	}
}

func TestInstant(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	clk := New(loc, time.Monday)

	// Zoned timestamps convert into the reference zone
	got, err := clk.Instant("2024-06-01T18:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 1, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Date-only values resolve to midnight in the reference zone
	got, err = clk.Instant("2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = time.Date(2024, 6, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("expected midnight in reference zone, got %v", got)
	}

	if _, err := clk.Instant("not a date"); err == nil {
		t.Error("expected error for unparseable input")
	}
}
