package main

import (
	"fmt"
	"os"

	"github.com/newthinker/journal/internal/config"
	"github.com/newthinker/journal/internal/core"
	"github.com/newthinker/journal/internal/storage/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export <account-id>",
		Short: "Write an account snapshot to archive storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchiver(opts, func(a *archive.Archiver, log *zap.Logger) error {
				p, err := a.Export(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("exporting %s: %w", args[0], err)
				}
				log.Info("snapshot exported", zap.String("account_id", args[0]), zap.String("path", p))
				fmt.Fprintln(cmd.OutOrStdout(), p)
				return nil
			})
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	var fromArchive bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore an account snapshot into the trade store",
		Long: `Restore an account snapshot. The argument is a local file, or with
--archive a path inside archive storage such as accounts/<id>.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchiver(opts, func(a *archive.Archiver, log *zap.Logger) error {
				var (
					acc core.Account
					err error
				)
				if fromArchive {
					acc, err = a.Import(cmd.Context(), args[0])
				} else {
					var data []byte
					if data, err = os.ReadFile(args[0]); err == nil {
						acc, err = a.Restore(cmd.Context(), data)
					}
				}
				if err != nil {
					return fmt.Errorf("importing %s: %w", args[0], err)
				}
				log.Info("snapshot imported", zap.String("account_id", acc.ID), zap.String("source", args[0]))
				fmt.Fprintf(cmd.OutOrStdout(), "restored account %s\n", acc.ID)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&fromArchive, "archive", false, "read the snapshot from archive storage")
	return cmd
}

// withArchiver opens the configured trade store and archive for fn, then closes the store
func withArchiver(opts *options, fn func(a *archive.Archiver, log *zap.Logger) error) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	log, err := newLogger(opts, cfg)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync()

	if cfg.Storage.Trades.Driver == config.Defaults().Storage.Trades.Driver {
		log.Warn("trade store is in memory; snapshots only see this process")
	}

	store, err := openStore(cfg.Storage.Trades)
	if err != nil {
		return fmt.Errorf("opening trade store: %w", err)
	}
	defer store.Close()

	storage, err := archive.Open(cfg.Storage.ArchiveConfig())
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}

	return fn(archive.NewArchiver(store, storage), log)
}
