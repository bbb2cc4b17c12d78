package hd

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want DerivationPath
	}{
		{"m", DerivationPath{}},
		{"  m  ", DerivationPath{}},
		{"m/0", DerivationPath{Normal(0)}},
		{"m/0'", DerivationPath{Hardened(0)}},
		{"m/44'/60'/0'/0/0", BIP44Path(60, 0, 0, 0)},
		{"m/44h/118h/0h/0/0", BIP44Path(118, 0, 0, 0)},
		{"m/44H/0H/1H/1/7", BIP44Path(0, 1, 1, 7)},
		{"m/2147483647'", DerivationPath{Hardened(2147483647)}},
		{"m/2147483647", DerivationPath{Normal(2147483647)}},
		{"m/0'/1/2'/2/1000000000", DerivationPath{Hardened(0), Normal(1), Hardened(2), Normal(2), Normal(1000000000)}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if err != nil {
				t.Fatalf("ParsePath(%q) error: %v", tt.in, err)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual(got, tt.want)) {
				t.Errorf("ParsePath(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"no root", "44'/0'"},
		{"upper root", "M/0"},
		{"root with trailing slash", "m/"},
		{"empty segment", "m//0"},
		{"trailing slash", "m/0/"},
		{"letters", "m/abc"},
		{"plus sign", "m/+1"},
		{"minus sign", "m/-1"},
		{"index overflow", "m/2147483648"},
		{"hardened overflow", "m/2147483648'"},
		{"huge index", "m/99999999999999999999"},
		{"double marker", "m/0''"},
		{"mixed markers", "m/0'h"},
		{"marker first", "m/'0"},
		{"marker only", "m/'"},
		{"marker in middle", "m/1'2"},
		{"space inside", "m/1 /2"},
		{"double root", "m/m/0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePath(tt.in)
			if !errors.Is(err, keyerr.ErrPath) {
				t.Errorf("ParsePath(%q) error = %v, want path error", tt.in, err)
			}
		})
	}
}

func TestParsePath_MarkerEquivalence(t *testing.T) {
	a, err := ParsePath("m/44'/0'/0'/0/0")
	if err != nil {
		t.Fatalf("ParsePath() error: %v", err)
	}
	for _, s := range []string{"m/44h/0h/0h/0/0", "m/44H/0H/0H/0/0", "m/44'/0h/0H/0/0"} {
		b, err := ParsePath(s)
		if err != nil {
			t.Fatalf("ParsePath(%q) error: %v", s, err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("ParsePath(%q) = %v, want %v", s, b, a)
		}
	}
}

func TestDerivationPath_String(t *testing.T) {
	tests := map[string]string{
		"m":                "m",
		"m/44h/60h/0h/0/0": "m/44'/60'/0'/0/0",
		"m/0'/1/2'/2/1000": "m/0'/1/2'/2/1000",
		" m/1H/2 ":         "m/1'/2",
	}
	for in, want := range tests {
		p, err := ParsePath(in)
		if err != nil {
			t.Fatalf("ParsePath(%q) error: %v", in, err)
		}
		if got := p.String(); got != want {
			t.Errorf("ParsePath(%q).String() = %q, want %q", in, got, want)
		}
	}
}

func TestDerivationPath_Indices(t *testing.T) {
	p := BIP44Path(60, 2, ChangeInternal, 9)
	want := []uint32{HardenedOffset + 44, HardenedOffset + 60, HardenedOffset + 2, 1, 9}
	if got := p.Indices(); !reflect.DeepEqual(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestDerivationPath_AppendDoesNotAlias(t *testing.T) {
	base := make(DerivationPath, 1, 8)
	base[0] = Hardened(44)
	a := base.Append(Normal(1))
	b := base.Append(Normal(2))
	if a[1].Index != 1 || b[1].Index != 2 {
		t.Errorf("Append aliased the base path: a=%v b=%v", a, b)
	}
}

func TestSegmentFromIndex(t *testing.T) {
	for _, i := range []uint32{0, 1, HardenedOffset - 1, HardenedOffset, HardenedOffset + 44, 0xffffffff} {
		if got := SegmentFromIndex(i).ChildIndex(); got != i {
			t.Errorf("SegmentFromIndex(%d).ChildIndex() = %d", i, got)
		}
	}
}

func TestDerivationPath_Validate(t *testing.T) {
	if err := MustParsePath("m/44'/60'/0'/0/0").Validate(); err != nil {
		t.Errorf("Validate() parsed path error: %v", err)
	}
	if err := (DerivationPath{}).Validate(); err != nil {
		t.Errorf("Validate() empty path error: %v", err)
	}
	bad := DerivationPath{Hardened(44), Normal(HardenedOffset)}
	if err := bad.Validate(); !errors.Is(err, keyerr.ErrPath) {
		t.Errorf("Validate() error = %v, want path error", err)
	}
}
