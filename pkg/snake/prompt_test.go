package snake

import (
	"bytes"
	"testing"
)

func TestParseBool(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    bool
		wantErr bool
	}{
		"yes":   {in: "yes", want: true},
		"Y":     {in: "Y", want: true},
		"no":    {in: "no"},
		"false": {in: "false"},
		"maybe": {in: "maybe", wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseBool(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestNotEmpty(t *testing.T) {
	if NotEmpty("  ") == nil {
		t.Fatal("blank input passed")
	}
	if err := NotEmpty("buy milk"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNopCloser(t *testing.T) {
	var buf bytes.Buffer
	w := NopCloser(&buf)
	if _, err := w.Write([]byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if buf.String() != "hi" {
		t.Fatalf("unexpected %q", buf.String())
	}
}
