package main

import (
	"fmt"

	"github.com/jcorbin/intcode/internal/amp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newAmpCmd(cfg *config) *cobra.Command {
	var (
		loop     bool
		phases   []int64
		alphabet []int64
		capacity int
	)
	cmd := &cobra.Command{
		Use:   "amp [flags] program_file",
		Short: "run amplifier sessions",
		Long: `Run one copy of a program per phase setting, passing a signal
	from each amplifier to the next, and print the final signal.
	Given --phases, runs just that session; otherwise runs every
	permutation of the phase alphabet and prints the best signal along
	with its phase settings. The default alphabet is 0 through 4, or 5
	through 9 with --loop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cfg.context(cmd)
			defer cancel()

			run := amp.Chain
			if loop {
				run = amp.Loop
			}
			opts := []amp.Option{
				amp.WithCapacity(capacity),
				amp.WithVMOptions(cfg.vmOptions()...),
			}

			w := output(cmd)
			defer w.Flush()
			if len(phases) > 0 {
				signal, err := run(ctx, prog, phases, opts...)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, signal)
				return nil
			}

			if len(alphabet) == 0 {
				alphabet = []int64{0, 1, 2, 3, 4}
				if loop {
					alphabet = []int64{5, 6, 7, 8, 9}
				}
			}
			log.Debugf("searching permutations of %v", alphabet)
			signal, best, err := amp.Max(ctx, prog, alphabet, run, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%v\t%v\n", signal, best)
			return nil
		},
	}
	cmd.Flags().BoolVar(&loop, "loop", false, "connect amplifiers in a feedback loop")
	cmd.Flags().Int64SliceVar(&phases, "phases", nil, "run a single session with these phase settings")
	cmd.Flags().Int64SliceVar(&alphabet, "alphabet", nil, "phase settings to permute")
	cmd.Flags().IntVar(&capacity, "capacity", amp.DefaultCapacity, "tokens each pipe may hold, 0 for unbounded")
	return cmd
}
