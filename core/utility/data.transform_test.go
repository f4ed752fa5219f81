package utility

import (
	"testing"
	"time"
)

func TestParseFlexibleTime_EpochMillis(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
	}{
		{"int64", int64(1735689600000), 1735689600000},
		{"int", int(1735689600000), 1735689600000},
		{"float64 từ JSON", float64(1735689600000), 1735689600000},
		{"chuỗi số", "1735689600000", 1735689600000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFlexibleTime(tc.input)
			if err != nil {
				t.Fatalf("ParseFlexibleTime(%v) trả về lỗi: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseFlexibleTime(%v) = %d, muốn %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseFlexibleTime_ISO8601(t *testing.T) {
	input := "2025-01-01T00:00:00Z"
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	got, err := ParseFlexibleTime(input)
	if err != nil {
		t.Fatalf("ParseFlexibleTime(%q) trả về lỗi: %v", input, err)
	}
	if got != want {
		t.Errorf("ParseFlexibleTime(%q) = %d, muốn %d", input, got, want)
	}
}

func TestParseFlexibleTime_Nil(t *testing.T) {
	got, err := ParseFlexibleTime(nil)
	if err != nil {
		t.Fatalf("ParseFlexibleTime(nil) trả về lỗi: %v", err)
	}
	if got != 0 {
		t.Errorf("ParseFlexibleTime(nil) = %d, muốn 0", got)
	}
}

func TestParseFlexibleTime_InvalidString(t *testing.T) {
	if _, err := ParseFlexibleTime("không phải thời gian"); err == nil {
		t.Error("ParseFlexibleTime với chuỗi rác phải trả về lỗi")
	}
}

func TestToMapFromMap_RoundTrip(t *testing.T) {
	type sample struct {
		Name  string `json:"name"`
		Count int64  `json:"count"`
	}

	in := sample{Name: "Trà sữa", Count: 7}
	m, err := ToMap(in)
	if err != nil {
		t.Fatalf("ToMap trả về lỗi: %v", err)
	}

	var out sample
	if err := FromMap(m, &out); err != nil {
		t.Fatalf("FromMap trả về lỗi: %v", err)
	}
	if out != in {
		t.Errorf("Round trip ToMap/FromMap = %+v, muốn %+v", out, in)
	}
}
