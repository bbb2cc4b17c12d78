package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/config"
	"github.com/Klingon-tech/klingnet-keys/internal/wallet"
	"github.com/Klingon-tech/klingnet-keys/pkg/address"
	"github.com/Klingon-tech/klingnet-keys/pkg/crypto"
	"github.com/Klingon-tech/klingnet-keys/pkg/hd"
	"github.com/Klingon-tech/klingnet-keys/pkg/keyerr"
	"github.com/Klingon-tech/klingnet-keys/pkg/mnemonic"
)

func (a *app) mnemonicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a new BIP-39 mnemonic phrase",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			phrase, err := mnemonic.Generate(a.cfg.Mnemonic.Words)
			if err != nil {
				return err
			}
			a.ui.warning(a.errOut, "write this phrase down and keep it offline")
			fmt.Fprintln(a.out, phrase)
			return nil
		},
	}
	a.flags.RegisterMnemonicFlags(cmd.Flags())
	return cmd
}

func (a *app) deriveCmd() *cobra.Command {
	var (
		path             string
		hrp              string
		mnemonicFlag     string
		passphrasePrompt bool
		showPrivate      bool
		showXpub         bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive keys and addresses from a mnemonic",
		Long: `Derive keys and addresses from a mnemonic.

Without --path, addresses are derived along m/44'/coin'/account'/change/index
for the selected profile, starting at --index. The mnemonic is read from
stdin unless --mnemonic is given.`,
		Example: `  klingnet-keys derive --profile cosmos --count 5
  klingnet-keys derive --profile evmos --path "m/44h/60h/0h/0/0"
  klingnet-keys derive --profile osmosis --hrp osmo --show-private`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, _ := wallet.ProfileByName(a.cfg.Derive.Profile)
			if hrp != "" {
				profile.HRP = hrp
			}

			phrase, err := a.readMnemonic(mnemonicFlag)
			if err != nil {
				return err
			}
			var passphrase string
			if passphrasePrompt {
				if passphrase, err = a.readSecret("Passphrase: "); err != nil {
					return err
				}
			}

			kp, err := a.svc.Open(phrase, passphrase)
			if err != nil {
				return err
			}
			defer kp.Zero()

			if showXpub {
				acct, err := kp.DerivePath(profile.Path(a.cfg.Derive.Account, 0, 0)[:3])
				if err != nil {
					return err
				}
				a.ui.field(a.out, "Account path", acct.Path().String())
				a.ui.field(a.out, "Account xpub", acct.ExtendedPublicKey().String())
				fmt.Fprintln(a.out)
				acct.Zero()
			}

			var paths []hd.DerivationPath
			if path != "" {
				p, err := hd.ParsePath(path)
				if err != nil {
					return err
				}
				paths = append(paths, p)
			} else {
				d := a.cfg.Derive
				accounts, err := a.svc.Addresses(cmd.Context(), kp, profile, d.Account, d.Change, d.Index, uint32(d.Count))
				if err != nil {
					return err
				}
				if !showPrivate {
					a.printAccounts(profile, accounts)
					return nil
				}
				for _, acc := range accounts {
					paths = append(paths, acc.Path)
				}
			}

			a.ui.header(a.out, "%s (%s)", profile.Name, a.cfg.Network)
			for i, p := range paths {
				if i > 0 {
					fmt.Fprintln(a.out)
				}
				d, err := a.svc.Derive(kp, profile, p)
				if err != nil {
					return err
				}
				a.printDerived(d, showPrivate)
				d.KeyPair.Zero()
			}
			return nil
		},
	}

	f := cmd.Flags()
	a.flags.RegisterDeriveFlags(f)
	f.StringVar(&path, "path", "", "Explicit derivation path (overrides --account/--change/--index)")
	f.StringVar(&hrp, "hrp", "", "Override the profile's Bech32 prefix")
	f.StringVar(&mnemonicFlag, "mnemonic", "", "Mnemonic phrase (default: read from stdin)")
	f.BoolVar(&passphrasePrompt, "passphrase-prompt", false, "Prompt for a BIP-39 passphrase")
	f.BoolVar(&showPrivate, "show-private", false, "Print private keys and extended private keys")
	f.BoolVar(&showXpub, "show-xpub", false, "Print the account-level extended public key")
	return cmd
}

func (a *app) printAccounts(p wallet.Profile, accounts []wallet.Account) {
	a.ui.header(a.out, "%s (%s)", p.Name, a.cfg.Network)
	for i, acc := range accounts {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		a.ui.field(a.out, "Path", acc.Path.String())
		a.ui.field(a.out, "Address", acc.Address.String())
		a.ui.field(a.out, "Public key", acc.PublicKey.Hex())
	}
}

func (a *app) printDerived(d *wallet.Derived, showPrivate bool) {
	kp := d.KeyPair
	a.ui.field(a.out, "Path", kp.Path().String())
	a.ui.field(a.out, "Address", d.Address.String())
	a.ui.field(a.out, "Public key", kp.PublicKey().Hex())
	a.ui.field(a.out, "xpub", kp.ExtendedPublicKey().String())
	if showPrivate {
		a.ui.secretField(a.out, "Private key", kp.PrivateKey().Hex())
		a.ui.secretField(a.out, "xprv", kp.ExtendedPrivateKey().String())
	}
}

// chainFlags registers --chain and --hrp on cmd.
func chainFlags(cmd *cobra.Command, chain, hrp *string) {
	cmd.Flags().StringVar(chain, "chain", "ethereum", "Address family: bitcoin, ethereum, cosmos, evmos, klingnet")
	cmd.Flags().StringVar(hrp, "hrp", "", "Bech32 prefix (default: the chain's default prefix)")
}

func (a *app) addressCmd() *cobra.Command {
	var chainName, hrp string

	cmd := &cobra.Command{
		Use:   "address <pubkey-hex>",
		Short: "Encode a public key as an address",
		Long: `Encode a secp256k1 public key as an address. The key may be
33-byte compressed or 65-byte uncompressed hex, with or without 0x.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			chain, err := address.ParseChain(chainName)
			if err != nil {
				return err
			}
			pub, err := decodePublicKey(args[0])
			if err != nil {
				return err
			}
			enc, err := a.svc.Encoder(wallet.Profile{Name: chain.String(), Chain: chain}, hrp)
			if err != nil {
				return err
			}
			addr, err := enc.Encode(pub)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, addr)
			return nil
		},
	}
	chainFlags(cmd, &chainName, &hrp)
	return cmd
}

// decodePublicKey accepts compressed or uncompressed hex and returns the
// compressed form.
func decodePublicKey(s string) ([]byte, error) {
	const op = "decode public key"

	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, keyerr.Wrap(keyerr.KindCurve, op, err)
	}
	switch len(raw) {
	case crypto.PublicKeySize:
		return raw, nil
	case crypto.UncompressedPubKeySize:
		return crypto.Secp256k1{}.Compress(raw)
	default:
		return nil, keyerr.Newf(keyerr.KindCurve, op, "public key has %d bytes, want %d or %d",
			len(raw), crypto.PublicKeySize, crypto.UncompressedPubKeySize)
	}
}

func (a *app) xpubCmd() *cobra.Command {
	var chainName, hrp string

	cmd := &cobra.Command{
		Use:   "xpub <extended-key> <path>",
		Short: "Derive a watch-only address from an extended public key",
		Long: `Derive a watch-only address below an extended key. The path is
relative to the key (for example m/0/5 below an account xpub) and must not
contain hardened segments. Extended private keys are neutered first.`,
		Example: `  klingnet-keys xpub xpub6C... m/0/0 --chain ethereum`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			chain, err := address.ParseChain(chainName)
			if err != nil {
				return err
			}
			xkey, err := hd.ParseExtendedKey(strings.TrimSpace(args[0]))
			if err != nil {
				return err
			}
			defer xkey.Zero()
			path, err := hd.ParsePath(args[1])
			if err != nil {
				return err
			}

			acc, err := a.svc.Watch(xkey, wallet.Profile{Name: chain.String(), Chain: chain}, hrp, path)
			if err != nil {
				return err
			}
			a.ui.field(a.out, "Path", acc.Path.String())
			a.ui.field(a.out, "Address", acc.Address.String())
			a.ui.field(a.out, "Public key", acc.PublicKey.Hex())
			return nil
		},
	}
	chainFlags(cmd, &chainName, &hrp)
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var chainName, hrp string

	cmd := &cobra.Command{
		Use:   "validate <address>",
		Short: "Check an address and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			chain, err := address.ParseChain(chainName)
			if err != nil {
				return err
			}
			if chain.UsesBech32() && hrp == "" {
				hrp = chain.DefaultHRP()
			}
			addr, err := address.Parse(chain, args[0], hrp)
			if err != nil {
				return err
			}
			a.ui.success(a.out, "valid %s address", chain)
			a.ui.field(a.out, "Address", addr.String())
			a.ui.field(a.out, "Hash", hex.EncodeToString(addr.Hash()))
			return nil
		},
	}
	chainFlags(cmd, &chainName, &hrp)
	return cmd
}

func (a *app) profilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in chain profiles",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			for _, name := range wallet.ProfileNames() {
				p, _ := wallet.ProfileByName(name)
				hrp := p.HRP
				if hrp == "" {
					hrp = "-"
				}
				fmt.Fprintf(a.out, "%-10s %-9s %-7s %s\n", p.Name, p.Chain, hrp, p.Path(0, 0, 0))
			}
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the data directory and a default config file",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			path, created, err := config.EnsureDataDirs(a.cfg)
			if err != nil {
				return err
			}
			if created {
				a.ui.success(a.out, "wrote %s", path)
			} else {
				fmt.Fprintf(a.out, "%s already exists\n", path)
			}
			return nil
		},
	})
	return cmd
}
