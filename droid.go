package main

import (
	"fmt"

	"github.com/jcorbin/intcode/internal/device"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newDroidCmd(cfg *config) *cobra.Command {
	var maxMoves int
	cmd := &cobra.Command{
		Use:   "droid [flags] program_file",
		Short: "run a repair droid",
		Long: `Run a program controlling a repair droid that follows walls
	until it finds the oxygen system, then print the explored map and the
	fewest moves from the start to the oxygen system.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			dr := device.NewDroid()
			dr.MaxMoves = maxMoves
			if cfg.trace {
				dr.Logf = log.WithField("device", "droid").Debugf
			}
			if _, err := runDevice(cmd, cfg, "droid", prog, dr); err != nil {
				return err
			}

			w := output(cmd)
			if err := dr.Render(w); err != nil {
				return err
			}
			if oxy, found := dr.Oxygen(); found {
				fmt.Fprintf(w, "oxygen system at %v, %v moves from start\n", oxy, dr.Distance())
			} else {
				fmt.Fprintf(w, "oxygen system not found after %v moves\n", dr.Moves())
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&maxMoves, "max-moves", 0, "give up after this many moves")
	return cmd
}
