package cmd

import (
	"fmt"
	"os"

	"github.com/aokyut/Qit/internal/tui"
	"github.com/spf13/cobra"
)

// defaultCircuit seeds the stepper when no file is given.
const defaultCircuit = `OPENQASM 2.0;
include "qelib1.inc";

qreg q[2];
creg c[2];

h q[0];
cx q[0], q[1];
measure q[0] -> c[0];
measure q[1] -> c[1];
`

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui [circuit_file]",
	Short: "Step through a circuit interactively.",
	Long: `Open an interactive stepper on a QASM circuit: walk the gate sequence
	forward and back while watching the state vector evolve.`,
	Run: func(cmd *cobra.Command, args []string) {
		src := defaultCircuit
		if len(args) > 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		if len(args) == 1 {
			bytes, err := os.ReadFile(args[0])
			if err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			src = string(bytes)
		}
		if err := tui.Run(src); err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
