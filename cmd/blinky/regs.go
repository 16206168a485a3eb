package main

import (
	"github.com/spf13/cobra"

	"omibyte.io/blinky/runner"
)

var (
	regsBoard string

	regsCmd = &cobra.Command{
		Use:   "regs",
		Short: "Print the registers the init sequence programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			regs, err := runner.Registers(regsBoard)
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), regs)
		},
	}
)

func init() {
	env := runner.Environment()
	regsCmd.Flags().StringVarP(&regsBoard, "board", "b", env["BLINKY_BOARD"], "board to build for. Default: $BLINKY_BOARD")
}
