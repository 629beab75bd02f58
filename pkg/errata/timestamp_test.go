package errata_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/stdevel/downspeeds/pkg/errata"
)

func TestTimestampDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "epoch milliseconds",
			raw:  `1699920000000`,
			want: time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "epoch milliseconds with time of day",
			raw:  `1700000000000`,
			want: time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso short",
			raw:  `"2023-11-14T00:00:00Z"`,
			want: time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso short with time of day",
			raw:  `"2023-11-14T22:13:20Z"`,
			want: time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "iso long",
			raw:  `"2023-11-14T00:00:00.000000Z"`,
			want: time.Date(2023, time.November, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "zero epoch",
			raw:     `0`,
			wantErr: true,
		},
		{
			name:    "null",
			raw:     `null`,
			wantErr: true,
		},
		{
			name:    "unknown format",
			raw:     `"14.11.2023"`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts errata.Timestamp
			if err := json.Unmarshal([]byte(tt.raw), &ts); err != nil {
				t.Fatalf("unmarshal %s: %s", tt.raw, err)
			}

			got, err := ts.Date()
			if (err != nil) != tt.wantErr {
				t.Errorf("Date() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				var perr *errata.DateParseError
				if !errors.As(err, &perr) {
					t.Errorf("Date() error = %v, expected DateParseError", err)
				}
				return
			}
			if !got.Equal(tt.want) {
				t.Errorf("Date() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimestampDateNoStaleValue(t *testing.T) {
	var ts errata.Timestamp
	if err := json.Unmarshal([]byte(`1699920000000`), &ts); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if _, err := ts.Date(); err != nil {
		t.Fatalf("Date() error = %v", err)
	}

	if err := json.Unmarshal([]byte(`"not a date"`), &ts); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if _, err := ts.Date(); err == nil {
		t.Errorf("Date() = nil error after reuse, expected DateParseError")
	}
}
