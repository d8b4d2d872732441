package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/imleoo/aigc-check/internal/models"
	"github.com/imleoo/aigc-check/internal/orchestrator"
)

func newDetectCmd(opts *rootOptions) *cobra.Command {
	var (
		file       string
		multimodal bool
		statistics bool
		semantic   bool
		language   string
	)

	cmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Submit text for AIGC detection",
		Long: `Submit text for detection, either as an argument or from a file.
The text is validated locally (non-blank, at most 10000 characters) before
any network request is made.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, file)
			if err != nil {
				return err
			}

			c, logger := opts.newClient()
			defer logger.Sync()

			orch := orchestrator.New(c, logger, orchestrator.WithTimeout(opts.Timeout))
			result, err := orch.Submit(cmd.Context(), text, models.DetectionOptions{
				EnableMultimodal: multimodal,
				EnableStatistics: statistics,
				EnableSemantic:   semantic,
				Language:         language,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			renderResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the text from a file instead of the argument")
	cmd.Flags().BoolVar(&multimodal, "multimodal", false, "Enable multimodal fusion")
	cmd.Flags().BoolVar(&statistics, "statistics", true, "Enable statistical analysis")
	cmd.Flags().BoolVar(&semantic, "semantic", false, "Enable semantic analysis")
	cmd.Flags().StringVar(&language, "language", "zh", "Text language tag")

	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a detection result by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, logger := opts.newClient()
			defer logger.Sync()

			result, err := c.FetchDetection(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if opts.JSON {
				return printJSON(cmd.OutOrStdout(), result)
			}
			renderResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func readInput(args []string, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("no input: pass text as an argument or use --file")
}
