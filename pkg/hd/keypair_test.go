package hd

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestPrivateKey_Redacted(t *testing.T) {
	kp := testKeyPair(t, NewEngine())
	priv := kp.PrivateKey()
	hexKey := priv.Hex()

	for _, s := range []string{priv.String(), fmt.Sprintf("%v", priv), fmt.Sprintf("%s", priv)} {
		if strings.Contains(s, hexKey) {
			t.Errorf("formatted private key leaks cleartext: %q", s)
		}
	}
	if len(hexKey) != 64 {
		t.Errorf("Hex() length = %d, want 64", len(hexKey))
	}
}

func TestPublicKey_Uncompressed(t *testing.T) {
	kp := testKeyPair(t, NewEngine())
	full, err := kp.PublicKey().Uncompressed(NewEngine().Curve())
	if err != nil {
		t.Fatalf("Uncompressed() error: %v", err)
	}
	if len(full) != 65 || full[0] != 0x04 {
		t.Fatalf("Uncompressed() = %x", full)
	}
	pub := kp.PublicKey()
	if !bytes.Equal(full[1:33], pub[1:]) {
		t.Error("x coordinate should match the compressed form")
	}
}

func TestKeyPair_Zero(t *testing.T) {
	kp := testKeyPair(t, NewEngine())
	kp.Zero()

	if !bytes.Equal(kp.Seed(), make([]byte, len(kp.Seed()))) {
		t.Error("Zero() should wipe the seed")
	}
	if kp.PrivateKey() != (PrivateKey{}) {
		t.Error("Zero() should wipe the private key")
	}
	if !bytes.Equal(kp.ExtendedPrivateKey().PrivateKey(), make([]byte, 32)) {
		t.Error("Zero() should wipe the extended private key")
	}
}

func TestKeyPair_PathIsCopy(t *testing.T) {
	master := testKeyPair(t, NewEngine())
	kp, err := master.Derive("m/1/2")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	p := kp.Path()
	p[0] = Hardened(9)
	if kp.Path().String() != "m/1/2" {
		t.Errorf("Path() = %s after mutating a copy", kp.Path())
	}
}
