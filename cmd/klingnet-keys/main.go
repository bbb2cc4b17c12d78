// klingnet-keys derives BIP-32 keys and chain addresses from BIP-39
// mnemonics.
package main

import (
	"os"
)

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := a.rootCmd().Execute()
	a.close()
	if err != nil {
		a.ui.fatal(a.errOut, err)
		os.Exit(1)
	}
}
