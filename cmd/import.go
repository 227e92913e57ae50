package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"budget-core/core/config"
	"budget-core/core/events"
	"budget-core/core/livequery"
	"budget-core/core/logger"
	"budget-core/core/numfmt"
	"budget-core/feature/preferences"
	"budget-core/feature/transactions"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importAccount string
	importObject  string
	importPurge   bool
	importDryRun  bool
	yesConfirm    bool
)

// importCmd plans and applies a transaction file import.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a transaction file from the storage bucket",
	Long: `Diffs a CSV file in the bucket against an account's stored transactions.

The plan is always printed. Rows missing from the file are only deleted
with --purge. Nothing is written with --dry-run or without confirmation.

Examples:
  # Show the plan only
  import --account acc-1 --object imports/march.csv --dry-run

  # Apply with interactive confirmation
  import --account acc-1 --object imports/march.csv

  # Apply and purge rows missing from the file, non-interactive
  import --account acc-1 --object imports/march.csv --purge --yes`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importAccount, "account", "", "Account id to import into")
	importCmd.Flags().StringVar(&importObject, "object", "", "Object name of the CSV file in the bucket")
	importCmd.Flags().BoolVar(&importPurge, "purge", false, "Delete stored transactions missing from the file")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Print the plan without writing anything")
	importCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm (non-interactive)")
	_ = importCmd.MarkFlagRequired("account")
	_ = importCmd.MarkFlagRequired("object")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := openDatabase(cfg.Database, l)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	store, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}
	publisher, err := events.New(&cfg.Events, l)
	if err != nil {
		return fmt.Errorf("failed to connect to message broker: %w", err)
	}
	defer publisher.Close()

	formatter := numfmt.NewFormatter(cfg.Format)
	if err := preferences.NewService(db, formatter, l).Load(ctx); err != nil {
		l.Warn("Failed to load number format preference", zap.Error(err))
	}
	svc := transactions.NewService(db, store, cfg.Storage.Bucket, formatter, livequery.NewRegistry(l), publisher, l)

	req := transactions.ImportRequest{
		Account: importAccount,
		Object:  importObject,
		Purge:   importPurge,
		DryRun:  importDryRun,
	}

	l.Info("Planning import...")
	res, err := svc.Plan(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to plan import: %w", err)
	}
	printImportReport(l, res)

	if len(res.Plan.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}
	if importDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirm(cmd.InOrStdin(), cmd.OutOrStdout()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	req.Confirm = true

	l.Info("Applying actions...")
	res, err = svc.Apply(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to apply import: %w", err)
	}
	l.Info("Import applied", zap.Int("executed", res.Executed), zap.String("report", res.Report))
	return nil
}

// printImportReport logs the plan summary, skipped rows and a sample of actions.
func printImportReport(l *zap.Logger, res *transactions.ImportResult) {
	s := res.Plan.Summary
	l.Info("Import plan",
		zap.String("account", res.Account),
		zap.String("object", res.Object),
		zap.Int("rows", res.Rows),
		zap.Int("skipped_rows", len(res.Errors)),
		zap.Int("create_actions", s.CreateActions),
		zap.Int("update_actions", s.UpdateActions),
		zap.Int("purge_actions", s.PurgeActions),
		zap.Int("skipped_deletes", s.SkippedDeletes),
	)

	for _, e := range res.Errors {
		l.Warn("Skipped row", zap.Int("line", e.Line), zap.String("reason", e.Reason))
	}

	const maxShow = 5
	for i, action := range res.Plan.Actions {
		if i == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(res.Plan.Actions)-maxShow))
			break
		}
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
}

// confirm asks for "yes" on in unless --yes was given.
func confirm(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "Type 'yes' to apply the import: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
