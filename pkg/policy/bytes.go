package policy

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// ByteSize is a byte count that unmarshals from human-readable YAML
// scalars such as 1048576, "500k", "2.37 MB", or "1.5 KiB".
type ByteSize int64

// Decimal and binary suffix multipliers. A trailing "B" (or the
// incorrect but common "b") is stripped before the suffix is read, so
// "1 GiB", "1Gi" and "1 GB", "1G" all parse. Two-letter binary
// suffixes are matched before single-letter decimal ones.
var byteSuffixes = []struct {
	suffix string
	mult   float64
}{
	{"ki", 1 << 10},
	{"Ki", 1 << 10},
	{"Mi", 1 << 20},
	{"Gi", 1 << 30},
	{"Ti", 1 << 40},
	{"Pi", 1 << 50},
	{"Ei", 1 << 60},
	{"k", 1e3},
	{"K", 1e3},
	{"M", 1e6},
	{"G", 1e9},
	{"T", 1e12},
	{"P", 1e15},
	{"E", 1e18},
}

// ParseByteSize converts a human-readable size string to a byte count.
// The mantissa may be fractional as long as the product is an integer;
// binary multipliers round to the nearest byte first, so "1.5 KiB" is
// 1536 but "1.234567 KiB" is rejected as overly precise.
func ParseByteSize(s string) (ByteSize, error) {
	orig := s
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "B") || strings.HasSuffix(s, "b") {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ByteSize(n), nil
	}
	mult := 1.0
	binary := false
	for _, bs := range byteSuffixes {
		if strings.HasSuffix(s, bs.suffix) {
			s = strings.TrimSpace(s[:len(s)-len(bs.suffix)])
			mult = bs.mult
			binary = len(bs.suffix) == 2
			break
		}
	}
	mantissa, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a byte size", orig)
	}
	v := mantissa * mult
	if binary {
		v = math.Round(v)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("byte size %q is not an integral number of bytes", orig)
	}
	return ByteSize(v), nil
}

// UnmarshalYAML accepts integers, integral floats, and human-readable
// size strings.
func (b *ByteSize) UnmarshalYAML(node *yaml.Node) error {
	var n int64
	if err := node.Decode(&n); err == nil {
		*b = ByteSize(n)
		return nil
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		if f != math.Trunc(f) {
			return fmt.Errorf("byte size %v is not an integer", f)
		}
		*b = ByteSize(f)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("cannot parse byte size: %w", err)
	}
	v, err := ParseByteSize(s)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalYAML writes the size as a plain integer.
func (b ByteSize) MarshalYAML() (interface{}, error) {
	return int64(b), nil
}

func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}
