package main

import (
	"fmt"

	"github.com/jcorbin/intcode/internal/device"
	"github.com/spf13/cobra"
)

func newPaintCmd(cfg *config) *cobra.Command {
	var (
		startWhite bool
		maxMoves   int
	)
	cmd := &cobra.Command{
		Use:   "paint [flags] program_file",
		Short: "run a hull painting robot",
		Long: `Run a program controlling a hull painting robot, then print how
	many panels it painted and the white panels of the hull.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}
			start := device.Black
			if startWhite {
				start = device.White
			}
			rob := device.NewRobot(start)
			rob.MaxMoves = maxMoves
			if _, err := runDevice(cmd, cfg, "robot", prog, rob); err != nil {
				return err
			}

			w := output(cmd)
			fmt.Fprintf(w, "painted %v panels in %v moves\n", rob.Painted(), rob.Moves())
			if err := rob.Render(w); err != nil {
				return err
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&startWhite, "start-white", false, "start the robot on a white panel")
	cmd.Flags().IntVar(&maxMoves, "max-moves", 0, "stop the robot after this many moves")
	return cmd
}
