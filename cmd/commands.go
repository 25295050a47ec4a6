package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/spf13/cobra"

	"github.com/codetesla51/smartstore/smartstore"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Long: `Sets the value for a key. The value is parsed as JSON; anything
that is not valid JSON is stored as a JSON string.`,
		Args:               cobra.ExactArgs(2),
		PersistentPreRunE:  openStore,
		PersistentPostRunE: closeStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			ttl, err := cmd.Flags().GetDuration("ttl")
			if err != nil {
				return err
			}
			if err := kvStore.Set(cmd.Context(), args[0], parseValue(args[1]), smartstore.WithTTL(ttl)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "set successfully")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:                "get [key]",
		Short:              "Reads the value for a key",
		Args:               cobra.ExactArgs(1),
		PersistentPreRunE:  openStore,
		PersistentPostRunE: closeStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, found, err := kvStore.GetRaw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "null")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
	rmCmd = &cobra.Command{
		Use:                "rm [key]",
		Aliases:            []string{"del", "remove"},
		Short:              "Removes a key",
		Args:               cobra.ExactArgs(1),
		PersistentPreRunE:  openStore,
		PersistentPostRunE: closeStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := kvStore.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "removed successfully")
			return nil
		},
	}
	rawCmd = &cobra.Command{
		Use:                "raw [key]",
		Short:              "Prints the string physically stored for a key",
		Args:               cobra.ExactArgs(1),
		PersistentPreRunE:  openStore,
		PersistentPostRunE: closeStore,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, found, err := kvStore.Raw(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key=%s, found=%t, raw=%s\n", kvStore.Key(args[0]), found, raw)
			return nil
		},
	}
	statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Prints operation counters of this process in Prometheus format",
		Run: func(cmd *cobra.Command, args []string) {
			metrics.WritePrometheus(cmd.OutOrStdout(), false)
		},
	}
)

func init() {
	setCmd.Flags().Duration("ttl", 0, "expire the value after this duration (e.g. 30s, 10m)")
}

// parseValue returns arg as decoded JSON, or arg itself if it is not JSON.
func parseValue(arg string) any {
	if json.Valid([]byte(arg)) {
		return json.RawMessage(arg)
	}
	return arg
}
