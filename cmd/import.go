package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jjenkins/civiq/internal/logging"
	"github.com/jjenkins/civiq/internal/service"
	"github.com/jjenkins/civiq/internal/store"
)

var importFile string
var importTruncate bool

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the ZIP code to congressional district relationship file",
	Long: `Import loads the Census ZCTA to congressional district relationship
file into PostgreSQL so ZIP codes can be resolved to districts.

The file is comma delimited with a header naming the ZCTA, state
FIPS and district columns. Rows for unassigned districts (ZZ) are skipped.
ZIP codes spanning several districts keep one row per district.

Examples:
  # Import the national relationship file
  ./civiq import --file natl_zccd_delim.txt

  # Replace the existing table contents
  ./civiq import --file natl_zccd_delim.txt --truncate`,
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "Path to the relationship file")
	importCmd.Flags().BoolVar(&importTruncate, "truncate", false, "Clear the ZIP table before importing")
	importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, args []string) {
	cfg := setup()
	defer logging.Sync()

	if cfg.Database.URL == "" {
		logging.Fatal("DATABASE_URL environment variable is required")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logging.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	file, err := os.Open(importFile)
	if err != nil {
		logging.Fatal("Failed to open relationship file", zap.String("file", importFile), zap.Error(err))
	}
	defer file.Close()

	logging.Info("Connecting to database...")
	db, err := store.NewDB(cfg.Database.URL)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	zipStore := store.NewZipStore(db)
	importer := service.NewZipImporter(zipStore)

	logging.Info("Starting ZIP import", zap.String("file", importFile), zap.Bool("truncate", importTruncate))
	stats, err := importer.Import(ctx, file, importTruncate)
	if err != nil {
		if stats != nil {
			importer.PrintSummary(os.Stdout, stats)
		}
		if ctx.Err() != nil {
			logging.Warn("Import cancelled")
			os.Exit(1)
		}
		logging.Fatal("Import failed", zap.Error(err))
	}
	importer.PrintSummary(os.Stdout, stats)

	if total, err := zipStore.Count(ctx); err != nil {
		logging.Warn("Failed to count ZIP rows", zap.Error(err))
	} else {
		logging.Info("ZIP table loaded", zap.Int("rows", total))
	}

	// Exit with error code if there were failures
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
