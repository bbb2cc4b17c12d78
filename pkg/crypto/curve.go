package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// Key sizes in bytes.
const (
	PrivateKeySize          = 32
	PublicKeySize           = 33
	UncompressedPubKeySize  = 65
	compressedEvenPrefix    = 0x02
	compressedOddPrefix     = 0x03
	uncompressedPointPrefix = 0x04
)

// Curve is the elliptic-curve capability consumed by key derivation and
// address encoding. Scalars are 32-byte big-endian, points are SEC1
// encoded. Every method fails with a keyerr.KindCurve error on
// out-of-range scalars or invalid point encodings.
type Curve interface {
	// PublicKey returns the compressed point priv*G.
	PublicKey(priv []byte) ([]byte, error)
	// AddScalars returns (a + b) mod n. A zero result is an error.
	AddScalars(a, b []byte) ([]byte, error)
	// AddPoint returns tweak*G + pub, compressed. The point at infinity is
	// an error.
	AddPoint(tweak, pub []byte) ([]byte, error)
	// ValidateScalar checks that priv is in [1, n-1].
	ValidateScalar(priv []byte) error
	// Compress parses a compressed or uncompressed point and returns its
	// 33-byte compressed form.
	Compress(pub []byte) ([]byte, error)
	// Uncompress returns the 65-byte uncompressed form of a point.
	Uncompress(pub []byte) ([]byte, error)
}

// Secp256k1 implements Curve with decred's secp256k1 package.
type Secp256k1 struct{}

var _ Curve = Secp256k1{}

var (
	errScalarLength = fmt.Errorf("scalar must be %d bytes", PrivateKeySize)
	errScalarZero   = errors.New("scalar is zero")
	errScalarRange  = errors.New("scalar is not less than the curve order")
	errInfinity     = errors.New("result is the point at infinity")
)

// parseScalar loads a 32-byte scalar, rejecting zero and values >= n.
func parseScalar(op string, b []byte) (*secp256k1.ModNScalar, error) {
	if len(b) != PrivateKeySize {
		return nil, keyerr.Curve(op, fmt.Errorf("%w, got %d", errScalarLength, len(b)))
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, keyerr.Curve(op, errScalarRange)
	}
	if s.IsZero() {
		return nil, keyerr.Curve(op, errScalarZero)
	}
	return &s, nil
}

func parsePoint(op string, b []byte) (*secp256k1.PublicKey, error) {
	switch {
	case len(b) == PublicKeySize && (b[0] == compressedEvenPrefix || b[0] == compressedOddPrefix):
	case len(b) == UncompressedPubKeySize && b[0] == uncompressedPointPrefix:
	default:
		return nil, keyerr.Curve(op, fmt.Errorf("invalid public key encoding (%d bytes)", len(b)))
	}
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, keyerr.Curve(op, err)
	}
	return pub, nil
}

// ValidateScalar checks that priv is a usable private key.
func (Secp256k1) ValidateScalar(priv []byte) error {
	_, err := parseScalar("validate scalar", priv)
	return err
}

// PublicKey returns the compressed public key for priv.
func (Secp256k1) PublicKey(priv []byte) ([]byte, error) {
	s, err := parseScalar("public key", priv)
	if err != nil {
		return nil, err
	}
	key := secp256k1.NewPrivateKey(s)
	defer key.Zero()
	return key.PubKey().SerializeCompressed(), nil
}

// AddScalars returns (a + b) mod n. a is a tweak and may be any value
// below n; b must be a valid private key.
func (Secp256k1) AddScalars(a, b []byte) ([]byte, error) {
	const op = "add scalars"
	if len(a) != PrivateKeySize {
		return nil, keyerr.Curve(op, fmt.Errorf("%w, got %d", errScalarLength, len(a)))
	}
	var tweak secp256k1.ModNScalar
	if overflow := tweak.SetByteSlice(a); overflow {
		return nil, keyerr.Curve(op, errScalarRange)
	}
	k, err := parseScalar(op, b)
	if err != nil {
		return nil, err
	}
	tweak.Add(k)
	k.Zero()
	if tweak.IsZero() {
		return nil, keyerr.Curve(op, errScalarZero)
	}
	out := tweak.Bytes()
	tweak.Zero()
	return out[:], nil
}

// AddPoint returns tweak*G + pub in compressed form.
func (Secp256k1) AddPoint(tweak, pub []byte) ([]byte, error) {
	const op = "add point"
	if len(tweak) != PrivateKeySize {
		return nil, keyerr.Curve(op, fmt.Errorf("%w, got %d", errScalarLength, len(tweak)))
	}
	var t secp256k1.ModNScalar
	if overflow := t.SetByteSlice(tweak); overflow {
		return nil, keyerr.Curve(op, errScalarRange)
	}
	parent, err := parsePoint(op, pub)
	if err != nil {
		return nil, err
	}

	var tweakPoint, parentPoint, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(&t, &tweakPoint)
	parent.AsJacobian(&parentPoint)
	secp256k1.AddNonConst(&tweakPoint, &parentPoint, &sum)
	if (sum.X.IsZero() && sum.Y.IsZero()) || sum.Z.IsZero() {
		return nil, keyerr.Curve(op, errInfinity)
	}
	sum.ToAffine()
	return secp256k1.NewPublicKey(&sum.X, &sum.Y).SerializeCompressed(), nil
}

// Compress returns the 33-byte compressed encoding of pub.
func (Secp256k1) Compress(pub []byte) ([]byte, error) {
	key, err := parsePoint("compress", pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}

// Uncompress returns the 65-byte uncompressed encoding of pub.
func (Secp256k1) Uncompress(pub []byte) ([]byte, error) {
	key, err := parsePoint("uncompress", pub)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed(), nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
