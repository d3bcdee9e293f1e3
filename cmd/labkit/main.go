package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/san-kum/labkit/internal/config"
	"github.com/san-kum/labkit/internal/export"
	"github.com/san-kum/labkit/internal/freq"
	"github.com/san-kum/labkit/internal/storage"
	"github.com/san-kum/labkit/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	logLevel   string
	// freq flags
	histogram bool
	skip      bool
	stats     bool
	plot      bool
	svgPath   string
	save      bool

	cfg    *config.Config
	logger *slog.Logger
)

// main registers the commands and runs the root command, exiting with
// status 1 if it returns an error.
func main() {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "labkit",
		Short:             "letter frequencies and particle kinematics",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "report directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	freqCmd := &cobra.Command{
		Use:   "freq [infile]",
		Short: "measure the relative frequencies of letters in a text file",
		Args:  cobra.ExactArgs(1),
		RunE:  runFreq,
	}
	freqCmd.Flags().BoolVar(&histogram, "histogram", false, "show a histogram for the frequencies (also -hist)")
	freqCmd.Flags().BoolVar(&skip, "skip", false, `skip the preamble and the license; counting starts after the line holding the first "***"`)
	freqCmd.Flags().BoolVar(&stats, "stats", false, "print out some basic stats about the book")
	freqCmd.Flags().BoolVar(&plot, "plot", false, "plot the frequency profile")
	freqCmd.Flags().StringVar(&svgPath, "svg", "", "write the histogram to an svg file")
	freqCmd.Flags().BoolVar(&save, "save", false, "save the report in the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved reports",
		Args:  cobra.NoArgs,
		RunE:  listReports,
	}

	showCmd := &cobra.Command{
		Use:   "show [report_id]",
		Short: "print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE:  showReport,
	}
	showCmd.Flags().BoolVar(&histogram, "histogram", false, "show a histogram for the frequencies")
	showCmd.Flags().BoolVar(&stats, "stats", false, "print the stats")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [report_id]",
		Short: "export a saved report to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [report_id]",
		Short: "export a saved report to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	rootCmd.AddCommand(freqCmd, runsCmd, showCmd, exportJSONCmd, exportCSVCmd)
	rootCmd.AddCommand(newParticleCmd(), newSpeciesCmd(), newDemoCmd())
	return rootCmd
}

// normalizeArgs maps the single-dash long form -hist to --histogram.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-hist" {
			a = "--histogram"
		}
		out[i] = a
	}
	return out
}

// setup resolves the configuration (defaults, yaml file, .env and
// environment, then flags) and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	c := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		c = loaded
	}
	if err := config.ApplyEnv(c, ".env"); err != nil {
		return err
	}
	if cmd.Flags().Changed("data") {
		c.DataDir = dataDir
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	level, _ := config.ParseLevel(c.LogLevel)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	cfg = c
	return nil
}

func histogramOptions() viz.HistogramOptions {
	return viz.HistogramOptions{
		Width:  cfg.Histogram.Width,
		Height: cfg.Histogram.Height,
		Color:  cfg.Histogram.Color,
	}
}

func runFreq(cmd *cobra.Command, args []string) error {
	logger.Info("start processing")
	start := time.Now()

	opts := freq.Options{Histogram: histogram, SkipPreamble: skip, Stats: stats}
	report, err := freq.NewProcessor(logger).Process(args[0], opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	renderCharts(cmd, report)

	if svgPath != "" {
		hopts := histogramOptions()
		if err := export.WriteHistogramSVG(svgPath, report.Frequencies, 26*hopts.Width/2, 20*hopts.Height, hopts.Color); err != nil {
			return err
		}
		logger.Info("histogram written", "path", svgPath)
	}

	if save {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(report)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report id: %s\n", id)
	}

	logger.Info("end of process", "elapsed", fmt.Sprintf("%.3fs", time.Since(start).Seconds()))
	return nil
}

func renderCharts(cmd *cobra.Command, report *freq.Report) {
	out := cmd.OutOrStdout()
	if report.Options.Histogram {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.Histogram(report.Frequencies, histogramOptions()))
	}
	if plot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.Profile(report.Frequencies, histogramOptions()))
	}
}

func listReports(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	reports, err := st.List()
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no reports found")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tLETTERS\tWORDS\tSKIP\tSOURCE")

	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%t\t%s\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.TotalLetters,
			r.Words,
			r.Options.SkipPreamble,
			r.Source,
		)
	}

	return w.Flush()
}

func showReport(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, report, err := st.LoadReport(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "report: %s\n", meta.ID)
	fmt.Fprintf(out, "source: %s\n", meta.Source)
	fmt.Fprintf(out, "time: %s\n\n", meta.Timestamp.Format(time.RFC3339))

	report.Options.Stats = stats
	report.Options.Histogram = histogram
	if err := freq.NewProcessor(logger).Write(out, report); err != nil {
		return err
	}
	renderCharts(cmd, report)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	meta, report, err := st.LoadReport(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, report)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.DataDir)
	freqs, err := st.LoadFrequencies(args[0])
	if err != nil {
		return err
	}
	if len(freqs) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(cmd.OutOrStdout(), freqs)
}
