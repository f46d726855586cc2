package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/weft/internal/config"
	"github.com/vango-dev/weft/internal/errors"
	"github.com/vango-dev/weft/pkg/snapshot"
)

func snapshotsCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect stored commit snapshots",
		Long: `List and show the commit snapshots stored by "weft render --snapshot"
and "weft serve" in the configured snapshot backend.`,
	}

	cmd.AddCommand(snapshotsListCmd(flags), snapshotsShowCmd(flags))
	return cmd
}

func snapshotsListCmd(flags *globalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshot keys, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()
			keys, err := store.List(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(keys) > limit {
				keys = keys[len(keys)-limit:]
			}
			w := cmd.OutOrStdout()
			for _, k := range keys {
				fmt.Fprintln(w, k)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the newest n keys")
	return cmd
}

func snapshotsShowCmd(flags *globalFlags) *cobra.Command {
	var htmlOnly bool

	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Print one snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx, cancel := commandContext(cmd)
			defer cancel()
			s, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if htmlOnly {
				_, err = fmt.Fprintln(w, s.HTML)
				return err
			}
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		},
	}

	cmd.Flags().BoolVar(&htmlOnly, "html", false, "Print only the committed HTML")
	return cmd
}

// openStore opens the configured backend, which must persist snapshots.
func openStore(flags *globalFlags) (snapshot.Store, error) {
	cfg, err := flags.load()
	if err != nil {
		return nil, err
	}
	switch cfg.Snapshot.Backend {
	case config.BackendBolt, config.BackendS3:
	default:
		return nil, errors.New("E122").
			WithDetail(fmt.Sprintf("snapshot backend %q does not persist snapshots", cfg.Snapshot.Backend)).
			WithSuggestion(`Set "snapshot": {"backend": "bolt"} in weft.json`)
	}
	return snapshot.Open(cfg)
}

// commandContext bounds store calls from commands run without a context.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, 30*time.Second)
}
