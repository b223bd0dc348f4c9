package store

import (
	"reflect"
	"testing"
	"time"
)

func TestMarshalList(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "[]"},
		{[]string{}, "[]"},
		{[]string{"Int8", "Shader"}, `["Int8","Shader"]`},
		{[]string{"a<b"}, `["a<b"]`},
	}
	for _, tt := range tests {
		got, err := marshalList(tt.in)
		if err != nil {
			t.Fatalf("marshalList(%v) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("marshalList(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestUnmarshalList(t *testing.T) {
	for _, in := range []string{"", "[]", "null"} {
		got, err := unmarshalList(in)
		if err != nil {
			t.Fatalf("unmarshalList(%q) failed: %v", in, err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("unmarshalList(%q) = %#v, want empty non-nil slice", in, got)
		}
	}

	got, err := unmarshalList(`["Int8"]`)
	if err != nil {
		t.Fatalf("unmarshalList failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Int8"}) {
		t.Errorf("unmarshalList = %v", got)
	}

	if _, err := unmarshalList(`{`); err == nil {
		t.Error("expected error for malformed list")
	}
}

func TestTimeRoundTrip(t *testing.T) {
	local := time.Date(2026, 3, 1, 13, 30, 0, 123456789, time.FixedZone("CET", 3600))

	got, err := parseTime(formatTime(local))
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if !got.Equal(local) {
		t.Errorf("round trip = %v, want %v", got, local)
	}
	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
}
