package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

const (
	generatorCompressed   = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"
	generatorUncompressed = "0479be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	twoGCompressed = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
	curveOrder     = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	orderMinusOne  = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140"
)

func scalar(v byte) []byte {
	b := make([]byte, PrivateKeySize)
	b[31] = v
	return b
}

func TestSecp256k1_PublicKey(t *testing.T) {
	var c Secp256k1

	tests := []struct {
		name string
		priv []byte
		want string
	}{
		{"one is the generator", scalar(1), generatorCompressed},
		{"two", scalar(2), twoGCompressed},
		{
			"derived key",
			mustHex(t, "d8f01ecf156f642a53f39c5ce47c03e237fd9118a67f9cf410ae8aee8dd7c6f5"),
			"03c15b6b6465953b57ba9b24cb7af04787fd45b07da23ad77afdd9ff76a60b4993",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.PublicKey(tt.priv)
			if err != nil {
				t.Fatalf("PublicKey() error: %v", err)
			}
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("PublicKey() = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestSecp256k1_InvalidScalars(t *testing.T) {
	var c Secp256k1

	tests := []struct {
		name string
		priv []byte
	}{
		{"zero", make([]byte, 32)},
		{"curve order", mustHex(t, curveOrder)},
		{"all ones", bytes.Repeat([]byte{0xff}, 32)},
		{"short", make([]byte, 31)},
		{"long", append(scalar(1), 0x00)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.PublicKey(tt.priv); !errors.Is(err, keyerr.ErrCurve) {
				t.Errorf("PublicKey() error = %v, want curve error", err)
			}
			if err := c.ValidateScalar(tt.priv); !errors.Is(err, keyerr.ErrCurve) {
				t.Errorf("ValidateScalar() error = %v, want curve error", err)
			}
		})
	}
}

func TestSecp256k1_ValidateScalar_Max(t *testing.T) {
	var c Secp256k1
	if err := c.ValidateScalar(mustHex(t, orderMinusOne)); err != nil {
		t.Errorf("n-1 should be a valid scalar: %v", err)
	}
}

func TestSecp256k1_AddScalars(t *testing.T) {
	var c Secp256k1

	got, err := c.AddScalars(scalar(1), scalar(1))
	if err != nil {
		t.Fatalf("AddScalars() error: %v", err)
	}
	if !bytes.Equal(got, scalar(2)) {
		t.Errorf("1 + 1 = %x, want %x", got, scalar(2))
	}

	// (n-1) + 2 wraps to 1.
	got, err = c.AddScalars(scalar(2), mustHex(t, orderMinusOne))
	if err != nil {
		t.Fatalf("AddScalars() wrap error: %v", err)
	}
	if !bytes.Equal(got, scalar(1)) {
		t.Errorf("(n-1) + 2 = %x, want 1", got)
	}
}

func TestSecp256k1_AddScalars_Errors(t *testing.T) {
	var c Secp256k1

	tests := []struct {
		name  string
		tweak []byte
		key   []byte
	}{
		{"sum is zero", scalar(1), mustHex(t, orderMinusOne)},
		{"tweak >= n", mustHex(t, curveOrder), scalar(1)},
		{"zero key", scalar(1), make([]byte, 32)},
		{"short tweak", make([]byte, 16), scalar(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.AddScalars(tt.tweak, tt.key)
			if !errors.Is(err, keyerr.ErrCurve) {
				t.Errorf("AddScalars() error = %v, want curve error", err)
			}
		})
	}
}

func TestSecp256k1_AddPoint(t *testing.T) {
	var c Secp256k1

	got, err := c.AddPoint(scalar(1), mustHex(t, generatorCompressed))
	if err != nil {
		t.Fatalf("AddPoint() error: %v", err)
	}
	if hex.EncodeToString(got) != twoGCompressed {
		t.Errorf("G + 1*G = %x, want %s", got, twoGCompressed)
	}
}

func TestSecp256k1_AddPoint_MatchesScalarPath(t *testing.T) {
	var c Secp256k1
	tweak := mustHex(t, "0f0e0d0c0b0a09080706050403020100000102030405060708090a0b0c0d0e0f")
	priv := mustHex(t, "d8f01ecf156f642a53f39c5ce47c03e237fd9118a67f9cf410ae8aee8dd7c6f5")

	pub, err := c.PublicKey(priv)
	if err != nil {
		t.Fatalf("PublicKey() error: %v", err)
	}
	viaPoint, err := c.AddPoint(tweak, pub)
	if err != nil {
		t.Fatalf("AddPoint() error: %v", err)
	}

	sum, err := c.AddScalars(tweak, priv)
	if err != nil {
		t.Fatalf("AddScalars() error: %v", err)
	}
	viaScalar, err := c.PublicKey(sum)
	if err != nil {
		t.Fatalf("PublicKey() error: %v", err)
	}

	if !bytes.Equal(viaPoint, viaScalar) {
		t.Errorf("point addition %x != scalar addition %x", viaPoint, viaScalar)
	}
}

func TestSecp256k1_AddPoint_Infinity(t *testing.T) {
	var c Secp256k1
	// (n-1)*G + G is the point at infinity.
	_, err := c.AddPoint(mustHex(t, orderMinusOne), mustHex(t, generatorCompressed))
	if !errors.Is(err, keyerr.ErrCurve) {
		t.Errorf("AddPoint() error = %v, want curve error", err)
	}
}

func TestSecp256k1_CompressUncompress(t *testing.T) {
	var c Secp256k1

	full, err := c.Uncompress(mustHex(t, generatorCompressed))
	if err != nil {
		t.Fatalf("Uncompress() error: %v", err)
	}
	if hex.EncodeToString(full) != generatorUncompressed {
		t.Errorf("Uncompress(G) = %x", full)
	}

	short, err := c.Compress(full)
	if err != nil {
		t.Fatalf("Compress() error: %v", err)
	}
	if hex.EncodeToString(short) != generatorCompressed {
		t.Errorf("Compress(G) = %x", short)
	}
}

func TestSecp256k1_InvalidPoints(t *testing.T) {
	var c Secp256k1

	// x = 5 has no square root for x^3 + 7 mod p.
	notOnCurve := make([]byte, PublicKeySize)
	notOnCurve[0] = 0x02
	notOnCurve[32] = 0x05
	badY := mustHex(t, generatorUncompressed)
	badY[64] ^= 0x01

	tests := []struct {
		name string
		pub  []byte
	}{
		{"empty", nil},
		{"bad prefix", append([]byte{0x05}, mustHex(t, generatorCompressed)[1:]...)},
		{"truncated", mustHex(t, generatorCompressed)[:32]},
		{"x not on curve", notOnCurve},
		{"y not on curve", badY},
		{"hybrid prefix", append([]byte{0x06}, mustHex(t, generatorUncompressed)[1:]...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Compress(tt.pub); !errors.Is(err, keyerr.ErrCurve) {
				t.Errorf("Compress() error = %v, want curve error", err)
			}
			if _, err := c.Uncompress(tt.pub); !errors.Is(err, keyerr.ErrCurve) {
				t.Errorf("Uncompress() error = %v, want curve error", err)
			}
		})
	}
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	if !bytes.Equal(b, []byte{0, 0, 0}) {
		t.Errorf("Zero() left %x", b)
	}
}
