package pairs

import (
	"encoding/json"
	"testing"
	"time"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return tm
}

func TestParseNullValueMode(t *testing.T) {
	tests := []struct {
		in      string
		want    NullValueMode
		wantErr bool
	}{
		{"", Passthrough, false},
		{"null", Passthrough, false},
		{"Passthrough", Passthrough, false},
		{"connected", Ignore, false},
		{"IGNORE", Ignore, false},
		{"null as zero", AsZero, false},
		{"as-zero", AsZero, false},
		{" zero ", AsZero, false},
		{"interpolate", Passthrough, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNullValueMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNullValueMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNullValueMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNullValueModeString(t *testing.T) {
	if Passthrough.String() != "null" || Ignore.String() != "connected" || AsZero.String() != "null as zero" {
		t.Error("unexpected mode spelling")
	}
	if NullValueMode(9).String() != "NullValueMode(9)" {
		t.Errorf("String() = %q", NullValueMode(9).String())
	}
	if _, err := NullValueMode(9).MarshalText(); err == nil {
		t.Error("MarshalText should reject an unknown mode")
	}
}

func TestOptionsJSON(t *testing.T) {
	opts := Options{XIndex: 0, YIndex: 2, NullValueMode: AsZero}

	data, err := json.Marshal(opts)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"xIndex":0,"yIndex":2,"nullValueMode":"null as zero"}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var decoded Options
	if err := json.Unmarshal([]byte(`{"xIndex":1,"yIndex":3,"nullValueMode":"connected"}`), &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded != (Options{XIndex: 1, YIndex: 3, NullValueMode: Ignore}) {
		t.Errorf("decoded = %+v", decoded)
	}

	// An absent mode is Passthrough.
	decoded = Options{}
	if err := json.Unmarshal([]byte(`{"xIndex":1,"yIndex":0}`), &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded.NullValueMode != Passthrough {
		t.Errorf("mode = %v, want Passthrough", decoded.NullValueMode)
	}

	if err := json.Unmarshal([]byte(`{"nullValueMode":"bogus"}`), &decoded); err == nil {
		t.Error("expected error for unknown mode")
	}
}
