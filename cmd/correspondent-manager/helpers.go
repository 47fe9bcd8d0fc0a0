// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/correspondent-manager/internal/manage"
	"github.com/pdiddy/correspondent-manager/internal/paperless"
	"github.com/pdiddy/correspondent-manager/pkg/types"
)

// usageError marks a validation failure at the CLI boundary. It maps to
// exit code 2 instead of 1.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usage(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// usageArgs wraps a cobra positional-args check so its failures map to
// the usage exit code.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usage("%v", err)
		}
		return nil
	}
}

var warnColor = color.New(color.FgYellow)

// newClient builds a paperless client from flags, environment, config
// file, and the secrets directory.
func newClient() (*paperless.Client, error) {
	cfg := types.ClientConfig{
		BaseURL:    viper.GetString("url"),
		Token:      resolveToken(),
		Timeout:    viper.GetDuration("timeout"),
		MaxRetries: viper.GetInt("max_retries"),
		PageSize:   viper.GetInt("page_size"),
	}
	if cfg.BaseURL == "" {
		return nil, usage("no server URL: set --url, PAPERLESS_URL, or the config file")
	}
	if cfg.Token == "" {
		return nil, usage("no API token: set --token, PAPERLESS_TOKEN, the config file, or .secrets/paperless-token")
	}
	return paperless.New(cfg)
}

// newManager builds the orchestrator around a fresh client, with the
// confirmation behavior selected by --yes and the terminal.
func newManager(cmd *cobra.Command) (*manage.Manager, error) {
	client, err := newClient()
	if err != nil {
		return nil, err
	}
	m := manage.New(client, os.Stdout, confirmer(cmd))
	if bs := viper.GetInt("batch_size"); bs > 0 {
		m.SetBatchSize(bs)
	}
	return m, nil
}

// confirmer returns the confirmation capability for destructive steps.
// --yes approves everything. Without a terminal on stdin, prompts are
// refused so scripted runs cannot hang or destroy data silently.
func confirmer(cmd *cobra.Command) manage.ConfirmFunc {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return func(string) bool { return true }
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return func(prompt string) bool {
			warnColor.Fprintf(os.Stderr, "warning: %s refused: stdin is not a terminal (use --yes)\n", prompt)
			return false
		}
	}
	reader := bufio.NewReader(os.Stdin)
	return func(prompt string) bool {
		fmt.Printf("%s [y/N]: ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

// parseIDs converts positional arguments to correspondent or document ids.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			return nil, usage("invalid id %q: want a positive integer", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseThreshold validates a similarity threshold in [0,1].
func parseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, usage("invalid threshold %q: want a number in [0,1]", s)
	}
	return v, checkThreshold(v)
}

func checkThreshold(v float64) error {
	if v < 0 || v > 1 {
		return usage("threshold %v out of range: want [0,1]", v)
	}
	return nil
}

// similarityConfig reads --threshold and --metric from the command.
func similarityConfig(cmd *cobra.Command) (types.SimilarityConfig, error) {
	threshold, _ := cmd.Flags().GetFloat64("threshold")
	if err := checkThreshold(threshold); err != nil {
		return types.SimilarityConfig{}, err
	}
	metricName, _ := cmd.Flags().GetString("metric")
	metric, err := types.ParseMetric(metricName)
	if err != nil {
		return types.SimilarityConfig{}, usage("%v", err)
	}
	return types.SimilarityConfig{Threshold: threshold, Metric: metric}, nil
}

func addSimilarityFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("threshold", types.DefaultSimilarityThreshold, "similarity threshold in [0,1]")
	cmd.Flags().String("metric", string(types.MetricJaroWinkler), "similarity metric: jaro-winkler or levenshtein")
}

// reportMergeOutcome maps a merge report to the exit behavior: partial
// failures warn but succeed, a fully failed batch is an error.
func reportMergeOutcome(report manage.MergeReport) error {
	if report.AllFailed() {
		return fmt.Errorf("all %d document reassignments failed", report.Failed)
	}
	if report.Failed > 0 {
		warnColor.Fprintf(os.Stderr, "warning: %d of %d documents were not reassigned\n",
			report.Failed, report.Failed+report.Reassigned)
	}
	return nil
}
