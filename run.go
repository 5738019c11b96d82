package main

import (
	"fmt"

	"github.com/jcorbin/intcode/internal/intcode"
	"github.com/jcorbin/intcode/internal/pipe"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRunCmd(cfg *config) *cobra.Command {
	var (
		input  []string
		memory bool
		dump   bool
	)
	cmd := &cobra.Command{
		Use:   "run [flags] program_file",
		Short: "run a program with fixed input values",
		Long: `Run a program, reading input values given by -i in order, and
	printing each output value on its own line. Reading past the last
	input value is an error. An input of "<stop>" halts the program
	when it is read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			ctx, cancel := cfg.context(cmd)
			defer cancel()

			in := intcode.NewQueue("input")
			for _, s := range input {
				tok, err := pipe.Parse(s)
				if err != nil {
					return err
				}
				if err := in.Write(ctx, tok); err != nil {
					return err
				}
			}
			in.CloseWrite()
			out := intcode.NewQueue("output")
			vm := intcode.New(prog, append([]intcode.VMOption{
				intcode.WithName(args[0]),
				intcode.WithInput(in),
				intcode.WithOutput(out),
			}, cfg.vmOptions()...)...)
			runErr := vm.Run(ctx)

			w := output(cmd)
			for _, val := range out.Values() {
				fmt.Fprintln(w, val)
			}
			if memory {
				if image, err := vm.Memory(); err != nil && runErr == nil {
					runErr = err
				} else if err == nil {
					fmt.Fprintln(w, intcode.JoinValues(image))
				}
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if dump || (runErr != nil && cfg.verbose) {
				dumpVM(cmd, vm)
			}
			if n := in.Len(); n > 0 && runErr == nil {
				log.Infof("%v input values left unread", n)
			}
			return runErr
		},
	}
	cmd.Flags().StringSliceVarP(&input, "input", "i", nil, "input values")
	cmd.Flags().BoolVar(&memory, "memory", false, "print the final memory image")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump machine state to stderr once stopped")
	return cmd
}
