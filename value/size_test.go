package value

import "testing"

func TestParseSize(t *testing.T) {
	cases := []struct {
		lit  string
		want int64
	}{
		{"0", 0},
		{"512", 512},
		{"2K", 2000},
		{"2k", 2000},
		{"3M", 3_000_000},
		{"1G", 1_000_000_000},
		{"1T", 1_000_000_000_000},
		{"1B", 1},
	}
	for _, c := range cases {
		got, err := ParseSize(c.lit)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", c.lit, err)
		}
		if got != c.want {
			t.Errorf("ParseSize(%q) = %d, want %d", c.lit, got, c.want)
		}
	}
}

func TestParseSizeRejectsFractionalMantissa(t *testing.T) {
	if _, err := ParseSize("1.5K"); err == nil {
		t.Error("expected error for fractional mantissa before suffix, got nil")
	}
}

func TestParseSizeRejectsEmpty(t *testing.T) {
	if _, err := ParseSize(""); err == nil {
		t.Error("expected error for empty literal, got nil")
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0B"},
		{999, "999B"},
		{2000, "2K"},
		{3_000_000, "3M"},
		{1_000_000_000, "1G"},
		{1_000_000_000_000, "1T"},
	}
	for _, c := range cases {
		if got := FormatSize(c.bytes); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}
