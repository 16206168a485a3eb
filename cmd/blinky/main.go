package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var rootCmd = &cobra.Command{
	Use:          "blinky",
	Short:        "Priority-ceiling blink firmware",
	Long:         "Run the blink firmware on a simulated board, check its task wiring and dump the registers its init sequence programs.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd, checkCmd, regsCmd, envCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
