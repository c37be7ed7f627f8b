package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/ereefs/benchscore/internal/aggregate"
	"github.com/ereefs/benchscore/internal/batch"
	"github.com/ereefs/benchscore/internal/benchspec"
	"github.com/ereefs/benchscore/internal/config"
	"github.com/ereefs/benchscore/internal/domain"
	"github.com/ereefs/benchscore/internal/ledger"
	"github.com/ereefs/benchscore/internal/reportstore"
	"github.com/ereefs/benchscore/internal/runstore"
	"github.com/ereefs/benchscore/tui"
	"github.com/spf13/cobra"
)

var cronExpr string

func init() {
	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Launch the interactive scoring form",
		RunE:  runScore,
	}
	rootCmd.AddCommand(scoreCmd)

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List saved runs",
		RunE:  runRuns,
	}
	rootCmd.AddCommand(runsCmd)

	showCmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show per-question subtotals for one run",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	rootCmd.AddCommand(showCmd)

	aggregateCmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Flatten all complete runs into CSV, XLSX and SQLite reports",
		RunE:  runAggregate,
	}
	aggregateCmd.Flags().StringVar(&cronExpr, "cron", "", "regenerate on a cron schedule instead of once")
	rootCmd.AddCommand(aggregateCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithLocalFallback(configPath)
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// A broken benchmark definition is fatal; nothing works without it
	spec, err := benchspec.Load(cfg.General.SpecPath)
	if err != nil {
		return err
	}

	store := runstore.New(cfg.General.RunsDir)
	if _, err := store.List(); err != nil {
		return err
	}

	model, err := tui.New(spec, store, cfg.General.Evaluator)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	// Refresh the run list when runs appear out-of-band (another checkout,
	// a manual copy into the runs dir)
	watcher, err := runstore.NewWatcher(store, func(ids []string) {
		p.Send(tui.RunsChangedMsg{RunIDs: ids})
	})
	if err == nil {
		defer watcher.Close()
	}

	_, err = p.Run()
	return err
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spec, err := benchspec.Load(cfg.General.SpecPath)
	if err != nil {
		return err
	}

	store := runstore.New(cfg.General.RunsDir)
	runs, err := store.LoadAll()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tMODEL\tSTATUS\tANSWERED\tSTARTED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
			run.RunID,
			run.ModelName,
			run.Status,
			len(run.AnsweredIDs()),
			len(spec.Items),
			startedAgo(run),
		)
	}
	return w.Flush()
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spec, err := benchspec.Load(cfg.General.SpecPath)
	if err != nil {
		return err
	}

	store := runstore.New(cfg.General.RunsDir)
	run, err := store.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", run.RunID, run.Status)
	if run.Evaluator != "" {
		fmt.Printf("evaluator: %s\n", run.Evaluator)
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "QUESTION\tSUBTOTAL\tMAX\tSAVED")
	total, totalMax := 0, 0
	for _, item := range spec.Items {
		ans := run.Answer(item.ID)
		max := item.EffectiveMaxPoints()
		totalMax += max
		if ans == nil {
			fmt.Fprintf(w, "%s\t-\t%d\t-\n", item.ID, max)
			continue
		}
		sub := ledger.Subtotal(ans.Criterion)
		total += sub
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", item.ID, sub, max, ans.Timestamp)
	}
	fmt.Fprintf(w, "TOTAL\t%d\t%d\t\n", total, totalMax)
	return w.Flush()
}

func runAggregate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := runstore.New(cfg.General.RunsDir)

	if cronExpr == "" {
		return aggregateOnce(cfg, store)
	}

	gate, err := batch.NewGate(cronExpr)
	if err != nil {
		return err
	}

	fmt.Printf("Regenerating reports on schedule %q, next run %s\n",
		cronExpr, gate.NextRun(time.Now()).Format(time.RFC3339))

	stop := make(chan struct{})
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		close(stop)
	}()

	gate.Start(func() error {
		if err := aggregateOnce(cfg, store); err != nil {
			fmt.Fprintln(os.Stderr, "aggregation failed:", err)
			return err
		}
		return nil
	}, stop)
	return nil
}

func aggregateOnce(cfg *config.Config, store *runstore.Store) error {
	ids, err := store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Println("No run files found.")
		return nil
	}

	runs, err := store.LoadAll()
	if err != nil {
		return err
	}

	table := aggregate.Flatten(runs)
	if table.Empty() {
		fmt.Println("No complete runs found.")
		return nil
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		return err
	}

	csvPath := filepath.Join(cfg.Report.OutputDir, cfg.Report.Basename+".csv")
	xlsxPath := filepath.Join(cfg.Report.OutputDir, cfg.Report.Basename+".xlsx")
	dbPath := filepath.Join(cfg.Report.OutputDir, cfg.Report.Basename+".db")

	if err := aggregate.WriteCSV(table, csvPath); err != nil {
		return err
	}
	if err := aggregate.WriteXLSX(table, xlsxPath); err != nil {
		return err
	}

	db, err := reportstore.New(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Replace(table); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", csvPath)
	fmt.Printf("Wrote %s\n", xlsxPath)
	fmt.Printf("Wrote %s\n", dbPath)
	return nil
}

func startedAgo(run *domain.Run) string {
	t, err := time.Parse(domain.TimestampLayout, run.UTCTimestamp)
	if err != nil {
		return run.UTCTimestamp
	}
	return humanize.Time(t)
}
