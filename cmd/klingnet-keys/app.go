package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Klingon-tech/klingnet-keys/config"
	"github.com/Klingon-tech/klingnet-keys/internal/keycache"
	"github.com/Klingon-tech/klingnet-keys/internal/log"
	"github.com/Klingon-tech/klingnet-keys/internal/wallet"
	"github.com/Klingon-tech/klingnet-keys/pkg/hd"
)

// app carries the state shared by all commands. Config, cache and the
// wallet service are set up once the flags are parsed.
type app struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
	ui     *ui

	flags *config.Flags
	cfg   *config.Config
	cache *keycache.Store
	svc   *wallet.Service
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, ui: newUI()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "klingnet-keys",
		Short: "HD key derivation and multi-chain address tool",
		Long: `klingnet-keys derives BIP-32 keys from BIP-39 mnemonics and renders
them as Bitcoin, Ethereum, Cosmos, Evmos and Klingnet addresses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	a.flags = config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.mnemonicCmd(),
		a.deriveCmd(),
		a.addressCmd(),
		a.xpubCmd(),
		a.validateCmd(),
		a.profilesCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration and builds the derivation stack.
func (a *app) setup() error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	network := cfg.HDNetwork()
	opts := []hd.Option{hd.WithNetwork(network), hd.WithLogger(log.HD)}

	store, err := keycache.Open(cfg.Cache.Backend, network.Name, log.Cache)
	if err != nil {
		return err
	}
	if store != nil {
		a.cache = store
		opts = append(opts, hd.WithCache(store))
	}

	a.svc = wallet.New(hd.NewEngine(opts...),
		wallet.WithLogger(log.Wallet),
		wallet.WithAddressLogger(log.Address))

	log.CLI.Debug().
		Str("network", network.Name).
		Str("cache", cfg.Cache.Backend).
		Str("profile", cfg.Derive.Profile).
		Msg("Configured")
	return nil
}

// close releases the cache. Safe to call when setup never ran.
func (a *app) close() {
	if a.cache == nil {
		return
	}
	st := a.cache.Stats()
	log.Cache.Debug().
		Uint64("hits", st.Hits).
		Uint64("misses", st.Misses).
		Int("entries", st.Entries).
		Msg("Cache stats")
	if err := a.cache.Close(); err != nil {
		log.Cache.Warn().Err(err).Msg("Close cache")
	}
	a.cache = nil
}
