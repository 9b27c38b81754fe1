package uid

import (
	"errors"
	"strings"
	"testing"
)

func TestParseAcceptedForms(t *testing.T) {
	want := "3d7d9ed3-f621-4ff5-9edb-5d032ac18683"

	inputs := []string{
		"3d7d9ed3-f621-4ff5-9edb-5d032ac18683",
		"3D7D9ED3F6214FF59EDB5D032AC18683",
		"0x3D7D9ED3F6214FF59EDB5D032AC18683",
		"0X3d7d9ed3f6214ff59edb5d032ac18683",
		"3D7D9ED3-F621-4FF5-9EDB-5D032AC18683",
	}

	var first UID
	for i, in := range inputs {
		id, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if id.String() != want {
			t.Errorf("Parse(%q).String() = %q, want %q", in, id.String(), want)
		}
		if i == 0 {
			first = id
		} else if id != first {
			t.Errorf("Parse(%q) != Parse(%q)", in, inputs[0])
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := New()
		got, err := Parse(id.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", id.String(), err)
		}
		if got != id {
			t.Fatalf("round trip mismatch: got %v want %v", got, id)
		}
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not a uuid", "not-a-uuid"},
		{"31 hex chars", strings.Repeat("a", 31)},
		{"33 hex chars", strings.Repeat("a", 33)},
		{"non-hex character", "3d7d9ed3-f621-4ff5-9edb-5d032ac1868z"},
		{"prefix only", "0x"},
		{"double prefix", "0x0x7d9ed3f6214ff59edb5d032ac18683"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.input)
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Parse(%q) returned %T, want *DecodeError", tc.input, err)
			}
			if decodeErr.InputLen != len(tc.input) {
				t.Errorf("InputLen = %d, want %d", decodeErr.InputLen, len(tc.input))
			}
		})
	}
}

func TestFromBytes(t *testing.T) {
	id := New()
	got, err := FromBytes(id.Bytes())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got != id {
		t.Fatalf("FromBytes mismatch: got %v want %v", got, id)
	}

	if _, err := FromBytes([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short byte slice")
	}
}
