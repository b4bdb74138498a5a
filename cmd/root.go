package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/getinsights/pkg/config"
	"github.com/user/getinsights/pkg/engine"
	"github.com/user/getinsights/pkg/logging"
	"github.com/user/getinsights/pkg/metrics"
	"github.com/user/getinsights/pkg/plugin"
	"github.com/user/getinsights/pkg/report"
	"github.com/user/getinsights/pkg/wrappers"
)

type rootOptions struct {
	configPath  string
	debug       bool
	noColor     bool
	metricsFile string
	resultFile  string
	view        viewFlags

	runner wrappers.Runner
}

// viewFlags are the report selection flags shared by the root and report commands.
type viewFlags struct {
	all, sum, sec, avail, stab, perf bool
	output                           string
}

func (v *viewFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&v.all, "all", false, "Prints all found issues (default view)")
	f.BoolVar(&v.sum, "sum", false, "Only prints a summary of what was found")
	f.BoolVar(&v.sec, "sec", false, "Prints all found Security issues")
	f.BoolVar(&v.avail, "avail", false, "Prints all found Availability issues")
	f.BoolVar(&v.stab, "stab", false, "Prints all found Stability issues")
	f.BoolVar(&v.perf, "perf", false, "Prints all found Performance issues")
	f.StringVarP(&v.output, "output", "o", string(report.FormatText), "Output format of the summary: text, json or yaml")
}

func (v viewFlags) options() (report.Options, error) {
	format, err := report.ParseFormat(v.output)
	if err != nil {
		return report.Options{}, err
	}

	var cats engine.CategorySet
	if v.sec {
		cats = cats.With(engine.Security)
	}
	if v.avail {
		cats = cats.With(engine.Availability)
	}
	if v.stab {
		cats = cats.With(engine.Stability)
	}
	if v.perf {
		cats = cats.With(engine.Performance)
	}
	return report.NewOptions(v.all, v.sum, cats, format), nil
}

// session is what every command needs once flags are parsed.
type session struct {
	cfg *config.Config
	log *zap.SugaredLogger
}

func (o *rootOptions) setup() (*session, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, plugin.Unknownf(err, "%v", err)
	}
	if o.metricsFile != "" {
		cfg.Metrics.Textfile = o.metricsFile
	}
	if o.resultFile != "" {
		cfg.Paths.Result = o.resultFile
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, o.debug)
	if err != nil {
		return nil, plugin.Unknownf(err, "%v", err)
	}
	return &session{cfg: cfg, log: log.With("run", uuid.NewString())}, nil
}

// viewOptions parses the view flags and decides on colour for the command's stdout.
func (o *rootOptions) viewOptions(cmd *cobra.Command) (report.Options, error) {
	view, err := o.view.options()
	if err != nil {
		return view, plugin.Unknownf(err, "%v", err)
	}
	view.Color = !o.noColor && !color.NoColor && cmd.OutOrStdout() == os.Stdout
	return view, nil
}

func newRootCmd(runner wrappers.Runner) *cobra.Command {
	opts := &rootOptions{runner: runner}

	rootCmd := &cobra.Command{
		Use:   "getinsights",
		Short: "Get a summary of issues detected by Red Hat Insights",
		Long: `getinsights runs insights-client to upload the system profile and evaluate it,
then prints the issues Red Hat Insights found, filtered by category.

It follows monitoring plugin conventions: exit code 0 when the report could be
produced, 3 (Unknown) when insights-client is missing, the system is not
registered, or the client fails.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default /etc/getinsights/config.yaml or ~/.getinsights/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().StringVar(&opts.metricsFile, "metrics-file", "", "Write summary metrics to this Prometheus textfile")
	rootCmd.Flags().StringVar(&opts.resultFile, "result-file", "", "Where insights-client writes its result (default /tmp/insights-result)")
	opts.view.register(rootCmd)

	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	return rootCmd
}

func runCheck(cmd *cobra.Command, opts *rootOptions) error {
	view, err := opts.viewOptions(cmd)
	if err != nil {
		return err
	}
	sess, err := opts.setup()
	if err != nil {
		return err
	}
	defer sess.log.Sync()

	w := wrappers.NewInsightsWrapperWithRunner(sess.cfg, opts.runner, sess.log)
	path, err := w.Execute(cmd.Context())
	if err != nil {
		sess.log.Debugw("insights-client run failed", "error", err)
		return err
	}
	return writeReport(cmd, sess, path, view)
}

// writeReport renders the result file and exports metrics when configured.
func writeReport(cmd *cobra.Command, sess *session, path string, view report.Options) error {
	findings, err := wrappers.LoadResult(path)
	if err != nil {
		return plugin.Unknownf(err, "failed to read insights result %s: %v", path, err)
	}

	sum, err := report.Render(cmd.OutOrStdout(), findings, view)
	if err != nil {
		return plugin.Unknownf(err, "failed to write report: %v", err)
	}
	sess.log.Infow("report complete", "path", path, "total", sum.Total, "security", sum.Security,
		"availability", sum.Availability, "stability", sum.Stability, "performance", sum.Performance)

	if textfile := sess.cfg.Metrics.Textfile; textfile != "" {
		if err := metrics.WriteTextfile(textfile, sum, time.Now()); err != nil {
			sess.log.Warnw("metrics export failed", "path", textfile, "error", err)
		}
	}
	return nil
}

// execute runs the command tree and prints the plugin status line on failure.
func execute(ctx context.Context, rootCmd *cobra.Command) int {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.OutOrStdout(), plugin.Message(err))
	}
	return plugin.ExitCode(err)
}

// Execute builds the command tree, runs it and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, newRootCmd(wrappers.ExecRunner{}))
}
