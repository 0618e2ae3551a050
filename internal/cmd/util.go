package cmd

import (
	"fmt"
	"os"

	qit "github.com/aokyut/Qit"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected int flag, or exit if an error arises.
func getInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read and parse a QASM circuit file, exiting on failure.
func readProgram(filename string) *qit.Program {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	prog, err := qit.ParseQASM(string(bytes))
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return prog
}
