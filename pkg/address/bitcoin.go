package address

import (
	"bytes"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
)

// P2PKH layout.
const (
	bitcoinVersion     = 0x00
	bitcoinPayloadSize = 1 + HashSize + 4
)

func (e *Encoder) encodeBitcoin(pub []byte) (Address, error) {
	h, err := e.hash160(pub)
	if err != nil {
		return Address{}, err
	}

	payload := make([]byte, 0, bitcoinPayloadSize)
	payload = append(payload, bitcoinVersion)
	payload = append(payload, h...)
	sum := crypto.Checksum(payload)
	payload = append(payload, sum[:]...)

	return Address{chain: Bitcoin, payload: payload, text: base58.Encode(payload)}, nil
}

func parseBitcoin(text string) (Address, error) {
	const op = "parse bitcoin address"

	payload := base58.Decode(text)
	if len(payload) != bitcoinPayloadSize {
		return Address{}, keyerr.Newf(keyerr.KindAddress, op, "decoded length %d, want %d", len(payload), bitcoinPayloadSize)
	}
	if payload[0] != bitcoinVersion {
		return Address{}, keyerr.Newf(keyerr.KindAddress, op, "version %#x, want %#x", payload[0], bitcoinVersion)
	}
	sum := crypto.Checksum(payload[:1+HashSize])
	if !bytes.Equal(sum[:], payload[1+HashSize:]) {
		return Address{}, keyerr.New(keyerr.KindAddress, op, "checksum mismatch")
	}
	return Address{chain: Bitcoin, payload: payload, text: text}, nil
}
