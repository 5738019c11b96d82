package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jcorbin/intcode/internal/device"
	"github.com/jcorbin/intcode/internal/flushio"
	"github.com/jcorbin/intcode/internal/intcode"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newArcadeCmd(cfg *config) *cobra.Command {
	var (
		freePlay   bool
		animate    bool
		frameDelay time.Duration
	)
	cmd := &cobra.Command{
		Use:   "arcade [flags] program_file",
		Short: "run an arcade cabinet",
		Long: `Run a program on an arcade cabinet whose joystick follows the
	ball, then print the final screen, score, and remaining blocks.
	When output is a terminal, every frame is drawn as the game plays.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := readProgram(cmd, args[0])
			if err != nil {
				return err
			}

			w := output(cmd)
			arc := device.NewArcade()
			if animate && isTerminal(cmd) {
				arc.Frame = func(arc *device.Arcade) {
					if err := flushio.Redraw(w, arc.Render); err != nil {
						log.Warnf("unable to draw frame: %v", err)
					}
					time.Sleep(frameDelay)
				}
			}

			var opts []intcode.VMOption
			if freePlay {
				opts = append(opts, intcode.WithMemAt(0, 2))
			}
			if _, err := runDevice(cmd, cfg, "arcade", prog, arc, opts...); err != nil {
				return err
			}

			if err := arc.Render(w); err != nil {
				return err
			}
			fmt.Fprintf(w, "blocks: %v\n", arc.Blocks())
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&freePlay, "free-play", false, "insert quarters before starting")
	cmd.Flags().BoolVar(&animate, "animate", true, "draw each frame on a terminal")
	cmd.Flags().DurationVar(&frameDelay, "frame-delay", 10*time.Millisecond, "pause after drawing each frame")
	return cmd
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
