package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"omibyte.io/blinky/boards"
	"omibyte.io/blinky/runner"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print blinky environment information",
	Run: func(cmd *cobra.Command, args []string) {
		runner.Environment().Print()
		fmt.Printf("# boards: %v\n", boards.All().Names())
	},
}
