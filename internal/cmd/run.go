package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	qit "github.com/aokyut/Qit"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] circuit_file",
	Short: "Simulate a QASM circuit and print the final state.",
	Long: `Simulate a QASM circuit on the zero state and print the amplitude and
	probability of each basis state. With --shots the final state is sampled
	instead; with --most only the most plausible outcome is printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		shots := getInt(cmd, "shots")

		prog := readProgram(args[0])
		log.Debugf("parsed %s: %d qubits, %d top-level gates", args[0], prog.Size, prog.Circuit.Len())

		start := time.Now()
		q, err := prog.Run()
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}
		log.Debugf("simulated %d amplitudes in %s", q.BasisCount(), time.Since(start))

		if getFlag(cmd, "most") {
			idx := q.PopMostPlausible()
			p, _ := q.Prob(idx)
			fmt.Printf("|%0*b⟩ (%d) p=%.6f\n", q.Size, idx, idx, p)
			return
		}

		printState(q)

		if shots > 0 {
			printShots(q, shots)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Int("shots", 0, "sample this many measurement outcomes")
	runCmd.Flags().Bool("most", false, "print only the most plausible basis state")
}

// printState writes one line per basis state carrying any probability
// mass.
func printState(q *qit.Qubits) {
	for idx, p := range q.Probs() {
		if p < 1e-9 {
			continue
		}
		amp, _ := q.Amplitude(idx)
		fmt.Printf("|%0*b⟩ % .6f%+.6fi  p=%.6f\n", q.Size, idx, real(amp), imag(amp), p)
	}
}

// printShots samples the state and prints an outcome histogram.
func printShots(q *qit.Qubits, shots int) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	counts := map[int]int{}
	for i := 0; i < shots; i++ {
		counts[q.Sample(rng)]++
	}

	outcomes := make([]int, 0, len(counts))
	for idx := range counts {
		outcomes = append(outcomes, idx)
	}
	sort.Ints(outcomes)

	fmt.Printf("\n%d shots:\n", shots)
	for _, idx := range outcomes {
		fmt.Printf("|%0*b⟩ %d\n", q.Size, idx, counts[idx])
	}
}
