package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/monitor"
	"github.com/rileyhilliard/pulse/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by snapshot --format.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

var snapshotFormatFlag string

// snapshotCmd takes one sample and prints it
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take one sample and print it as YAML or JSON",
	Long: `Take a single sample with the same windows and rules as the dashboard
and print it in a machine-readable format.

JSON output is wrapped in an envelope: {"success": true, "data": {...}}.
Failures in JSON mode are reported in the same envelope.

Examples:
  pulse snapshot
  pulse snapshot --format json
  pulse snapshot --hogs --format json | jq '.data.io_hogs'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := parseFormat(snapshotFormatFlag)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		report, err := snapshotReport(cmd)
		if err != nil {
			if format == formatJSON {
				_ = WriteJSONFromError(out, err)
			}
			return err
		}
		return writeReport(out, report, format)
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotFormatFlag, "format", "f", formatYAML, "output format (yaml or json)")
	rootCmd.AddCommand(snapshotCmd)
}

func snapshotReport(cmd *cobra.Command) (monitor.Report, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return monitor.Report{}, err
	}

	return collectReport(cmd.Context(), newSampler(cfg))
}

func collectReport(ctx context.Context, sampler *monitor.Sampler) (monitor.Report, error) {
	sample, err := sampler.Collect(ctx)
	if err != nil {
		return monitor.Report{}, errors.Wrap(err, "Sampling was interrupted")
	}
	return monitor.NewReport(sample), nil
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case formatYAML, "yml":
		return formatYAML, nil
	case formatJSON:
		return formatJSON, nil
	default:
		suggestion := "Use --format yaml or --format json"
		if match := util.ClosestMatch(f, []string{formatYAML, formatJSON}, 2); match != "" {
			suggestion = fmt.Sprintf("Did you mean --format %s?", match)
		}
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output format '%s'", s),
			suggestion)
	}
}

// writeReport encodes the report in the given format.
func writeReport(w io.Writer, report monitor.Report, format string) error {
	if format == formatJSON {
		if err := WriteJSONSuccess(w, report); err != nil {
			return errors.WrapWithCode(err, errors.ErrRender, "Failed to write JSON snapshot", "")
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Failed to write YAML snapshot", "")
	}
	if err := enc.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender, "Failed to write YAML snapshot", "")
	}
	return nil
}
