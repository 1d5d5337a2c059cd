package fixed

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Tenths
	}{
		{"0.0", 0},
		{"-0.1", -1},
		{"-9.9", -99},
		{"9.9", 99},
		{"23.5", 235},
		{"-23.7", -237},
		{"10.0", 100},
		{"-10.0", -100},
		{"99.9", 999},
		{"-99.9", -999},
	} {
		if got := Parse([]byte(tc.in)); got != tc.want {
			t.Errorf("Parse(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseAppendRoundTrip(t *testing.T) {
	for v := -999; v <= 999; v++ {
		lit := formatLiteral(v)
		got := Parse([]byte(lit))
		if got != Tenths(v) {
			t.Fatalf("Parse(%q) = %d, want %d", lit, got, v)
		}
		if s := got.String(); s != lit {
			t.Fatalf("Tenths(%d).String() = %q, want %q", v, s, lit)
		}
	}
}

// formatLiteral renders v the way the input format writes it, -0.x included.
func formatLiteral(v int) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%d", sign, v/10, v%10)
}

func TestAppend(t *testing.T) {
	for _, tc := range []struct {
		in   Tenths
		want string
	}{
		{0, "0.0"},
		{-1, "-0.1"},
		{5, "0.5"},
		{-50, "-5.0"},
		{120, "12.0"},
		{-999, "-99.9"},
	} {
		if got := string(Append([]byte("x="), tc.in)); got != "x="+tc.want {
			t.Errorf("Append(%d) = %q, want %q", tc.in, got, "x="+tc.want)
		}
	}
}

func TestMean(t *testing.T) {
	for _, tc := range []struct {
		sum   Tenths
		count uint64
		want  Tenths
	}{
		{200, 2, 100},
		{0, 2, 0},
		{-999, 1, -999},
		// exact halves round away from zero
		{5, 2, 3},
		{-5, 2, -3},
		{15, 10, 2},
		{-15, 10, -2},
		{25, 10, 3},
		{-25, 10, -3},
		// just below a half
		{4, 3, 1},
		{-4, 3, -1},
		// rounds to zero from below, printed without a sign
		{-1, 3, 0},
		{-1, 2, -1},
		{1, 3, 0},
	} {
		if got := Mean(tc.sum, tc.count); got != tc.want {
			t.Errorf("Mean(%d, %d) = %d, want %d", tc.sum, tc.count, got, tc.want)
		}
	}

	if s := Mean(-1, 3).String(); s != "0.0" {
		t.Errorf("Mean(-1, 3) renders as %q, want 0.0", s)
	}
}

func BenchmarkParse(b *testing.B) {
	vals := [][]byte{[]byte("-12.3"), []byte("4.5"), []byte("-0.7"), []byte("99.9")}
	var sink Tenths
	for i := 0; i < b.N; i++ {
		sink += Parse(vals[i&3])
	}
	_ = sink
}
