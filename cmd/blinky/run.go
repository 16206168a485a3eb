package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"omibyte.io/blinky/runner"
	"omibyte.io/blinky/sim"
)

var (
	runOpts = struct {
		board         string
		scenario      string
		settle        string
		cyclesPerStep uint64
		trace         int
		list          bool
	}{}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run a scenario on the simulated board",
		Long:  "Run a built-in or file scenario on the simulated board and print what the firmware did. The command fails when the scenario's expectations are not met.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runOpts.list {
				for _, name := range sim.Scenarios() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			scenario, err := sim.LoadScenario(runOpts.scenario)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			result, err := runner.Run(ctx, runner.Options{
				Board:         runOpts.board,
				Settle:        runOpts.settle,
				Scenario:      scenario,
				CyclesPerStep: runOpts.cyclesPerStep,
				TraceSize:     runOpts.trace,
				Environment:   runner.Environment(),
			})
			if err != nil {
				return err
			}

			if err := writeYAML(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if cmd.Flags().Changed("trace") {
				printTrace(cmd, result.Trace)
			}
			return result.Check(scenario.Expect)
		},
	}
)

func printTrace(cmd *cobra.Command, records []sim.Record) {
	out := cmd.OutOrStdout()
	for _, r := range records {
		task := r.Task
		if task == "" {
			task = "-"
		}
		fmt.Fprintf(out, "%10d %5d %-8s %-10s p%-2d", r.Cycle, r.Tick, r.Kind, task, r.Priority)
		switch {
		case r.Resource != "":
			fmt.Fprintf(out, " %s", r.Resource)
		case r.Kind.String() == "pend":
			fmt.Fprintf(out, " irq %d", r.IRQ)
		}
		fmt.Fprintln(out)
	}
}

func init() {
	env := runner.Environment()
	runCmd.Flags().StringVarP(&runOpts.board, "board", "b", "", "board to simulate. Default: the scenario's board, then $BLINKY_BOARD")
	runCmd.Flags().StringVarP(&runOpts.scenario, "scenario", "s", env["BLINKY_SCENARIO"], "built-in scenario name or scenario file. Default: $BLINKY_SCENARIO")
	runCmd.Flags().StringVar(&runOpts.settle, "settle", "", "settle mode (=toggle, =led-off)")
	runCmd.Flags().Uint64Var(&runOpts.cyclesPerStep, "cycles-per-step", 0, "core cycles per instruction boundary")
	runCmd.Flags().IntVarP(&runOpts.trace, "trace", "t", 0, "print the last n scheduling events")
	runCmd.Flags().BoolVarP(&runOpts.list, "list", "l", false, "list the built-in scenarios")
}
