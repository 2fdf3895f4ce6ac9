package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"certsentry/internal/config"
	"certsentry/internal/logging"
	"certsentry/internal/models"
	"certsentry/internal/monitor"
	"certsentry/internal/reporter"
)

const (
	AppName    = "certsentry"
	AppVersion = "1.0.0"
)

var (
	rootCmd *cobra.Command

	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	blue   = color.New(color.FgBlue).SprintFunc()
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "certsentry [flags]",
		Short: "SSL certificate expiry monitoring with webhook alerts",
		Long: `Certsentry probes configured HTTPS endpoints, checks each TLS
certificate's expiration against a warning window, and raises webhook
notifications for certificates that are expired, expiring soon, or
unreachable.

Examples:
  certsentry --sites configs/sites.json
  certsentry --sites sites.yaml --warning-days 14 --timeout 5s
  certsentry single example.com`,
		Version: AppVersion,
		Run:     runCheck,
	}

	rootCmd.Flags().StringP("config", "c", "", "Properties config file (default: configs/default.yaml)")
	rootCmd.Flags().StringP("sites", "s", "configs/sites.json", "Sites file (JSON or YAML)")
	rootCmd.Flags().IntP("warning-days", "w", 7, "Days before expiry at which a certificate is flagged")
	rootCmd.Flags().DurationP("timeout", "t", 10*time.Second, "Timeout per TLS probe")
	rootCmd.Flags().StringP("output-dir", "o", "results", "Directory for report files")
	rootCmd.Flags().StringP("output-format", "f", "json", "Report format(s) - comma separated (json,csv,html,all)")
	rootCmd.Flags().BoolP("quiet", "q", false, "Quiet mode - suppress console output")
	rootCmd.Flags().BoolP("no-color", "n", false, "Disable colorized output")
	rootCmd.Flags().Bool("no-progress", false, "Disable progress bar")
	rootCmd.Flags().String("log-level", "", "Log level (debug, info, warn, error)")

	singleCmd := &cobra.Command{
		Use:   "single [flags] HOST",
		Short: "Check a single host",
		Long:  `Check the TLS certificate of a single host without requiring a sites file.`,
		Args:  cobra.ExactArgs(1),
		Run:   runSingle,
	}
	singleCmd.Flags().AddFlagSet(rootCmd.Flags())

	rootCmd.AddCommand(singleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) {
	cfg, log := setup(cmd)

	sitesFile, _ := cmd.Flags().GetString("sites")
	sites, err := config.LoadSites(sitesFile)
	if err != nil {
		fatalExit(cfg, log, err)
	}

	results := runMonitor(cmd, cfg, log, sites)
	writeReports(cfg, log, results)
	printSummary(cfg, results)
	exitForResults(results)
}

func runSingle(cmd *cobra.Command, args []string) {
	cfg, log := setup(cmd)

	site := models.SiteSpec{Name: args[0], URL: "https://" + args[0]}
	results := runMonitor(cmd, cfg, log, []models.SiteSpec{site})
	printSummary(cfg, results)
	exitForResults(results)
}

// setup loads configuration, applies flag overrides, and builds the
// logger. Configuration failure at this point is fatal.
func setup(cmd *cobra.Command) (*models.Config, *logrus.Logger) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("ERROR:"), err)
		os.Exit(1)
	}

	if cmd.Flags().Changed("warning-days") {
		cfg.WarningDays, _ = cmd.Flags().GetInt("warning-days")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	}
	if cmd.Flags().Changed("output-format") {
		cfg.OutputFormat, _ = cmd.Flags().GetString("output-format")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.Quiet = true
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		cfg.NoColor = true
	}
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); noProgress {
		cfg.NoProgress = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", red("ERROR:"), err)
		os.Exit(1)
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	log, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed to initialize logging: %v\n", red("ERROR:"), err)
		os.Exit(1)
	}

	return cfg, log
}

func runMonitor(cmd *cobra.Command, cfg *models.Config, log *logrus.Logger, sites []models.SiteSpec) []models.SiteResult {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		if !cfg.Quiet {
			fmt.Println("\nReceived termination signal. Shutting down gracefully...")
		}
		cancel()

		time.Sleep(2 * time.Second)
		os.Exit(1)
	}()

	var notifier monitor.Notifier
	if cfg.NotifyEnabled && cfg.WebhookURL != "" {
		notifier = reporter.NewWebhookNotifier(cfg.WebhookURL, log)
	}

	return monitor.New(cfg, log, notifier).Run(ctx, sites)
}

func writeReports(cfg *models.Config, log *logrus.Logger, results []models.SiteResult) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Errorf("Failed to create output directory: %v", err)
		return
	}
	rep := reporter.New(results, cfg.OutputDir)
	if err := rep.GenerateReport("ssl_report", cfg.OutputFormat); err != nil {
		log.Errorf("Failed to write reports: %v", err)
	}
}

func printSummary(cfg *models.Config, results []models.SiteResult) {
	if cfg.Quiet {
		return
	}

	summary := models.Summarize(results)
	fmt.Printf("\n%s %s sites checked: %s valid, %s expiring soon, %s expired, %s errors\n",
		blue("SUMMARY:"),
		fmt.Sprint(summary.Total),
		green(summary.Valid),
		yellow(summary.ExpiringSoon),
		red(summary.Expired),
		red(summary.Errors))

	for _, result := range results {
		fmt.Printf("%s %s (%s) - %s\n",
			reporter.Emoji(result.Status), result.SiteName, result.SiteURL, result.Message)
	}
}

// exitForResults derives the process exit code: 2 when any site is
// expired or errored, 0 otherwise.
func exitForResults(results []models.SiteResult) {
	for _, result := range results {
		if result.Status == models.StatusExpired || result.Status == models.StatusError {
			os.Exit(2)
		}
	}
}

// fatalExit reports a fatal setup/run error, making a best-effort attempt
// to notify before exiting with code 1.
func fatalExit(cfg *models.Config, log *logrus.Logger, err error) {
	log.Errorf("Fatal error in SSL monitoring: %v", err)

	if cfg.NotifyEnabled && cfg.WebhookURL != "" {
		notifier := reporter.NewWebhookNotifier(cfg.WebhookURL, log)
		message := fmt.Sprintf("🚨 FATAL ERROR in SSL Certificate Monitoring\n\nError: %v\n\nPlease check the monitoring system immediately.", err)
		if sendErr := notifier.Send(message, cfg.NotifyTargetID); sendErr != nil {
			log.Errorf("Failed to send fatal error notification: %v", sendErr)
		}
	}

	os.Exit(1)
}
