package hd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// HardenedOffset is added to a segment index to mark hardened derivation.
const HardenedOffset = bip32.FirstHardenedChild

// BIP-44 constants.
const (
	PurposeBIP44   = 44
	ChangeExternal = 0
	ChangeInternal = 1
)

// Segment is one step of a derivation path.
type Segment struct {
	Index    uint32 // always < HardenedOffset
	Hardened bool
}

// Hardened returns a hardened segment for index i.
func Hardened(i uint32) Segment { return Segment{Index: i, Hardened: true} }

// Normal returns a non-hardened segment for index i.
func Normal(i uint32) Segment { return Segment{Index: i} }

// ChildIndex returns the 32-bit index used in ser32(i).
func (s Segment) ChildIndex() uint32 {
	if s.Hardened {
		return s.Index + HardenedOffset
	}
	return s.Index
}

// SegmentFromIndex splits a 32-bit child index into a Segment.
func SegmentFromIndex(i uint32) Segment {
	if i >= HardenedOffset {
		return Segment{Index: i - HardenedOffset, Hardened: true}
	}
	return Segment{Index: i}
}

func (s Segment) String() string {
	if s.Hardened {
		return strconv.FormatUint(uint64(s.Index), 10) + "'"
	}
	return strconv.FormatUint(uint64(s.Index), 10)
}

// DerivationPath is an ordered list of segments walked from the master key.
// The empty path is the master itself.
type DerivationPath []Segment

// String renders the canonical form, e.g. m/44'/60'/0'/0/0.
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteByte('m')
	for _, s := range p {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// Append returns a new path with segs added. p is not modified.
func (p DerivationPath) Append(segs ...Segment) DerivationPath {
	out := make(DerivationPath, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// Validate reports a KindPath error for any segment whose index is not
// below HardenedOffset. Paths built with Hardened, Normal or BIP44Path are
// not checked at construction.
func (p DerivationPath) Validate() error {
	for n, s := range p {
		if s.Index >= HardenedOffset {
			return keyerr.Newf(keyerr.KindPath, "validate path",
				"segment %d index %d out of range (must be < 2^31)", n+1, s.Index)
		}
	}
	return nil
}

// Indices returns the 32-bit child indices of every segment.
func (p DerivationPath) Indices() []uint32 {
	out := make([]uint32, len(p))
	for i, s := range p {
		out[i] = s.ChildIndex()
	}
	return out
}

// BIP44Path builds m/44'/coin'/account'/change/index.
func BIP44Path(coin, account, change, index uint32) DerivationPath {
	return DerivationPath{
		Hardened(PurposeBIP44),
		Hardened(coin),
		Hardened(account),
		Normal(change),
		Normal(index),
	}
}

// ParsePath parses m(/segment)* where a segment is a decimal index
// optionally followed by one hardened marker: ', h or H.
// Surrounding whitespace is ignored.
func ParsePath(s string) (DerivationPath, error) {
	const op = "parse path"

	s = strings.TrimSpace(s)
	if s == "" {
		return nil, keyerr.New(keyerr.KindPath, op, "empty path")
	}
	parts := strings.Split(s, "/")
	if parts[0] != "m" {
		return nil, keyerr.Newf(keyerr.KindPath, op, "path %q must start with m", s)
	}

	path := make(DerivationPath, 0, len(parts)-1)
	for n, part := range parts[1:] {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, keyerr.Newf(keyerr.KindPath, op, "segment %d %q: %w", n+1, part, err)
		}
		path = append(path, seg)
	}
	return path, nil
}

// MustParsePath is like ParsePath but panics on error. For constants.
func MustParsePath(s string) DerivationPath {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(part string) (Segment, error) {
	if part == "" {
		return Segment{}, fmt.Errorf("empty segment")
	}
	var seg Segment
	digits := part
	switch part[len(part)-1] {
	case '\'', 'h', 'H':
		seg.Hardened = true
		digits = part[:len(part)-1]
	}
	if digits == "" {
		return Segment{}, fmt.Errorf("missing index")
	}
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if c < '0' || c > '9' {
			return Segment{}, fmt.Errorf("unexpected character %q", c)
		}
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || v >= uint64(HardenedOffset) {
		return Segment{}, fmt.Errorf("index out of range (must be < 2^31)")
	}
	seg.Index = uint32(v)
	return seg, nil
}
