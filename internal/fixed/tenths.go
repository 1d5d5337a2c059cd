// Package fixed handles measurement values with exactly one fractional
// digit, stored as integer tenths.
package fixed

import (
	"math"
	"strconv"
)

// Tenths is a decimal value scaled by 10: -23.7 is -237.
type Tenths int64

const (
	// MaxTenths and MinTenths are the sentinels an empty aggregate starts
	// from, not valid measurements.
	MaxTenths Tenths = math.MaxInt64
	MinTenths Tenths = math.MinInt64
)

// Parse decodes a value matching -?\d{1,2}\.\d into tenths. b must be 3 to 5
// bytes in that format; nothing else is checked.
func Parse(b []byte) Tenths {
	n := len(b)

	var neg int64
	if b[0] == '-' {
		neg = 1
	}

	// two is 1 when there are two integer digits. The tens digit then sits
	// right after the sign, at b[neg]; with one integer digit b[neg] is the
	// ones digit and gets multiplied away.
	two := int64(n) - 3 - neg
	mag := two*int64(b[neg]-'0')*100 +
		int64(b[n-3]-'0')*10 +
		int64(b[n-1]-'0')

	return Tenths((mag ^ -neg) + neg)
}

// Append writes t with exactly one fractional digit.
func Append(dst []byte, t Tenths) []byte {
	u := uint64(t)
	if t < 0 {
		dst = append(dst, '-')
		u = -u
	}
	dst = strconv.AppendUint(dst, u/10, 10)
	return append(dst, '.', byte(u%10)+'0')
}

func (t Tenths) String() string {
	return string(Append(make([]byte, 0, 8), t))
}

// Mean returns sum/count in tenths, rounded half away from zero. count must
// be positive.
func Mean(sum Tenths, count uint64) Tenths {
	if sum < 0 {
		return -Tenths((uint64(-sum)*2 + count) / (count * 2))
	}
	return Tenths((uint64(sum)*2 + count) / (count * 2))
}
