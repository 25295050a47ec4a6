package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codetesla51/smartstore/internal/config"
	"github.com/codetesla51/smartstore/internal/logging"
	"github.com/codetesla51/smartstore/smartstore"
)

const (
	Version = "0.1.0"
)

var (
	// opened by PersistentPreRunE, released by PersistentPostRunE
	kvStore      *smartstore.Store
	closeBackend = func() error { return nil }

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "smartstore",
		Short: "namespaced key-value store with expiry",
		Long: fmt.Sprintf(`smartstore (v%s)

Stores JSON values under namespaced keys in a durable backend
(bbolt file, Redis, Postgres or memory), with optional expiry.
Flags can also be set as SMARTSTORE_<FLAG> environment variables
or in a .env file.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of smartstore",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "smartstore v%s\n", Version)
		},
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(viper.GetViper(), cmd.Flags()); err != nil {
				return err
			}
			c, err := config.Load(viper.GetViper())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), c.String())
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize(func() { config.Init(viper.GetViper()) })

	config.SetupFlags(RootCmd)

	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(configCmd)
	RootCmd.AddCommand(setCmd)
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(rawCmd)
	RootCmd.AddCommand(statsCmd)
}

// openStore binds flags, opens the backend and creates kvStore.
func openStore(cmd *cobra.Command, _ []string) error {
	v := viper.GetViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	c, err := config.Load(v)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	codec, err := smartstore.CodecByName(c.Codec)
	if err != nil {
		return err
	}

	backend, closeFn, err := c.OpenBackend()
	if err != nil {
		return err
	}
	kvStore, err = smartstore.New(cmd.Context(), c.Namespace, backend,
		smartstore.WithCodec(codec),
		smartstore.WithLogger(logging.New(cmd.ErrOrStderr(), "store", level)),
		smartstore.WithMetrics(true),
	)
	if err != nil {
		_ = closeFn()
		return err
	}
	closeBackend = closeFn
	return nil
}

func closeStore(*cobra.Command, []string) error {
	kvStore = nil
	return closeBackend()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
