package main

import (
	"context"
	"os"
	"time"

	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/intcode"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// config holds the flags shared by every command.
type config struct {
	verbose  bool
	trace    bool
	timeout  time.Duration
	memLimit uint
}

func newRootCmd() *cobra.Command {
	var cfg config
	rootCmd := &cobra.Command{
		Use:          "intcode",
		Short:        "Run Intcode programs.",
		Long:         "Run Intcode programs, alone or attached to amplifiers, robots, arcades, and droids.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if cfg.verbose || cfg.trace {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "increase logging verbosity")
	flags.BoolVar(&cfg.trace, "trace", false, "log machine input, output, and halting")
	flags.DurationVar(&cfg.timeout, "timeout", 0, "specify a time limit")
	flags.UintVar(&cfg.memLimit, "mem-limit", 0, "highest memory address the machine may use")

	rootCmd.AddCommand(
		newRunCmd(&cfg),
		newAmpCmd(&cfg),
		newPaintCmd(&cfg),
		newArcadeCmd(&cfg),
		newDroidCmd(&cfg),
	)
	return rootCmd
}

// context returns a context carrying any --timeout.
func (cfg *config) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.timeout != 0 {
		return context.WithTimeout(ctx, cfg.timeout)
	}
	return context.WithCancel(ctx)
}

// vmOptions returns machine options for the shared flags.
func (cfg *config) vmOptions() []intcode.VMOption {
	var opts []intcode.VMOption
	if cfg.memLimit != 0 {
		opts = append(opts, intcode.WithMemLimit(cfg.memLimit))
	}
	if cfg.trace {
		opts = append(opts, intcode.WithLogger(log.StandardLogger()))
	}
	return opts
}

// readProgram reads a program file, or standard input when name is "-".
func readProgram(cmd *cobra.Command, name string) (intcode.Program, error) {
	if name == "-" {
		return intcode.ReadProgram(cmd.InOrStdin())
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return intcode.ReadProgram(f)
}

// runDevice runs prog attached to a single reactive device.
func runDevice(cmd *cobra.Command, cfg *config, name string, prog intcode.Program, dev intcode.Device, opts ...intcode.VMOption) (*intcode.VM, error) {
	ctx, cancel := cfg.context(cmd)
	defer cancel()
	vm := intcode.New(prog, append(append([]intcode.VMOption{
		intcode.WithName(name),
		intcode.WithIO(dev),
	}, cfg.vmOptions()...), opts...)...)
	err := vm.Run(ctx)
	if err != nil && cfg.verbose {
		dumpVM(cmd, vm)
	}
	return vm, err
}

func dumpVM(cmd *cobra.Command, vm *intcode.VM) {
	if err := vm.Dump(cmd.ErrOrStderr()); err != nil {
		log.Warnf("unable to dump %v: %v", vm.Name(), err)
	}
}

// output returns the command's buffered output; callers must Flush it.
func output(cmd *cobra.Command) flushio.WriteFlusher {
	return flushio.NewWriteFlusher(cmd.OutOrStdout())
}
