package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/springsdata/springsync/internal/io/blobio"
	"github.com/springsdata/springsync/internal/io/cacheio"
	"github.com/springsdata/springsync/internal/io/kvio"
	"github.com/springsdata/springsync/internal/io/mailio"
	"github.com/springsdata/springsync/internal/io/reconio"
	"github.com/springsdata/springsync/internal/io/storeio"
	springsync "github.com/springsdata/springsync/pkg"
	"github.com/springsdata/springsync/pkg/config"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Reconciles new field-survey files with the springs database",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()
		cfg := config.New(opts...)
		ssync := springsync.New(cfg)

		st, err := storeio.New(cfg)
		if err != nil {
			slog.Error("Cannot connect to database", "error", err)
			os.Exit(1)
		}
		defer st.Close()

		var reconOpts []reconio.Option
		if cfg.CacheURL != "" {
			reconOpts = append(reconOpts,
				reconio.OptCacheInvalidator(cacheio.New(cfg.CacheURL)))
		}

		ledger, err := kvio.New(filepath.Join(cfg.WorkDir, "ledger"))
		if err != nil {
			slog.Warn("Cannot create ledger, files may be reprocessed",
				"error", err)
		} else {
			reconOpts = append(reconOpts, reconio.OptLedger(ledger))
		}

		if cfg.S3Bucket != "" {
			images, err := blobio.New(ctx, cfg)
			if err != nil {
				slog.Error("Cannot create image store", "error", err)
				os.Exit(1)
			}
			reconOpts = append(reconOpts, reconio.OptImageStore(images))
		}

		rec := reconio.New(cfg, st, reconOpts...)
		rep, err := ssync.Upload(ctx, rec)
		if err != nil {
			slog.Error("Upload run failed", "error", err)
		}

		if cfg.SMTPHost != "" {
			notifier := mailio.New(cfg)
			if mErr := notifier.Send(ctx, rep); mErr != nil {
				slog.Error("Cannot send report", "error", mErr)
			}
		}

		if err != nil || rep.HasErrors() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
