// derive_key.go prints the pubkey and the address on every chain for a
// hex-encoded private key file.
// Usage: go run scripts/derive_key.go <keyfile> [hrp]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-keys/pkg/address"
	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [hrp]")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	keyHex := strings.TrimPrefix(strings.TrimSpace(string(data)), "0x")
	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer crypto.Zero(keyBytes)

	pub, err := crypto.Secp256k1{}.PublicKey(keyBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))

	var hrp string
	if len(os.Args) > 2 {
		hrp = os.Args[2]
	}
	for _, chain := range []address.Chain{address.Bitcoin, address.Ethereum, address.Cosmos, address.Evmos, address.Klingnet} {
		h := ""
		if chain.UsesBech32() {
			h = hrp
		}
		addr, err := address.Encode(chain, h, pub)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%s=%s\n", chain, addr)
	}
}
