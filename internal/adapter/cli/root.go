// Package cli wires the collection pipeline to its cobra command surface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bkyoung/pr-context/internal/usecase/collect"
)

// ContextCollector defines the dependency required to run the root command.
type ContextCollector interface {
	Collect(ctx context.Context, prNumber int) (string, error)
}

// ReportWriter persists the rendered report to its destination.
type ReportWriter interface {
	Write(path, content string) error
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Collector ContextCollector
	Writer    ReportWriter
	Args      Arguments
	Version   string
}

// NewRootCommand constructs the root cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	var outputPath string

	root := &cobra.Command{
		Use:     "prctx <pr-number>",
		Short:   "Collect pull request review context into a markdown report",
		Long:    "prctx gathers a pull request's metadata, diff, reviews, and comments\ninto a single deterministic markdown report for a reviewing agent.",
		Args:    cobra.ExactArgs(1),
		Version: versionString,
		RunE: func(cmd *cobra.Command, args []string) error {
			prNumber, err := parsePRNumber(args[0])
			if err != nil {
				return err
			}

			// Usage text only helps with argument mistakes, which are
			// all validated by this point.
			cmd.SilenceUsage = true

			report, err := deps.Collector.Collect(cmd.Context(), prNumber)
			if err != nil {
				if errors.Is(err, collect.ErrSkipped) {
					fmt.Fprintf(cmd.ErrOrStderr(), "review skipped: %v\n", err)
					return nil
				}
				return err
			}

			return deps.Writer.Write(outputPath, report)
		},
	}
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.Flags().StringVarP(&outputPath, "output", "o", "", "Report destination path, or - for stdout")
	_ = root.MarkFlagRequired("output")

	return root
}

func parsePRNumber(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("pull request number must be a positive integer, got %q", arg)
	}
	return n, nil
}
