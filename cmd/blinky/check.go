package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/blinky/runner"
)

var (
	checkBoard string

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate the task and resource wiring",
		Long:  "Build the firmware wiring for a board, validate every resource ceiling and print the tasks and resources.",
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := runner.Analyze(checkBoard)
			if err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			return writeYAML(cmd.OutOrStdout(), analysis)
		},
	}
)

func init() {
	env := runner.Environment()
	checkCmd.Flags().StringVarP(&checkBoard, "board", "b", env["BLINKY_BOARD"], "board to build for. Default: $BLINKY_BOARD")
}
