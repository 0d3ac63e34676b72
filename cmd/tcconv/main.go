// Command tcconv converts between milliseconds, frames, timecodes and
// timestamps from the command line
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cbsinteractive/timecode-service/mediatime"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var errUnit = errors.New("unit must be one of ms, s or frames")

type options struct {
	fps     float64
	unit    string
	verbose bool

	log *logrus.Logger
}

func (o *options) timebase() (mediatime.Timebase, error) {
	if !(o.fps > 0) {
		return mediatime.Timebase{}, errors.Errorf("fps must be positive, got %v", o.fps)
	}
	tb := mediatime.NewTimebase(o.fps)
	o.log.WithFields(logrus.Fields{"fps": tb.FPS(), "rate": tb.Rate(), "drop": tb.DropFrame()}).Debug("timebase")
	return tb, nil
}

// time reads arg in the unit selected by --unit
func (o *options) time(arg string, tb mediatime.Timebase) (mediatime.Time, error) {
	switch o.unit {
	case "ms":
		ms, err := strconv.ParseInt(arg, 10, 64)
		return mediatime.FromMilliseconds(ms), errors.Wrapf(err, "parsing milliseconds %q", arg)
	case "s":
		s, err := strconv.ParseFloat(arg, 64)
		return mediatime.FromSeconds(s), errors.Wrapf(err, "parsing seconds %q", arg)
	case "frames":
		n, err := strconv.ParseInt(arg, 10, 64)
		return tb.TimeFromFrames(n), errors.Wrapf(err, "parsing frames %q", arg)
	}
	return 0, errors.Wrapf(errUnit, "got %q", o.unit)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	o := &options{log: logrus.New()}
	o.log.Out = stderr
	o.log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	root := &cobra.Command{
		Use:           "tcconv",
		Short:         "Convert media times, timecodes and timestamps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if o.verbose {
				o.log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().Float64Var(&o.fps, "fps", mediatime.DefaultFPS, "frame rate")
	root.PersistentFlags().StringVarP(&o.unit, "unit", "u", "ms", "unit of numeric arguments: ms, s or frames")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		&cobra.Command{
			Use:   "timecode TIME",
			Short: "Print the HH:MM:SS:FF timecode of a time",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tb, err := o.timebase()
				if err != nil {
					return err
				}
				t, err := o.time(args[0], tb)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mediatime.TimecodeFromTime(t, tb))
				return nil
			},
		},
		&cobra.Command{
			Use:   "timestamp TIME",
			Short: "Print the HH:MM:SS.mmm timestamp of a time",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tb, err := o.timebase()
				if err != nil {
					return err
				}
				t, err := o.time(args[0], tb)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), mediatime.TimestampFromTime(t))
				return nil
			},
		},
		&cobra.Command{
			Use:   "frames TIME",
			Short: "Print the number of whole frames in a time",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tb, err := o.timebase()
				if err != nil {
					return err
				}
				t, err := o.time(args[0], tb)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), tb.FramesFromTime(t))
				return nil
			},
		},
		&cobra.Command{
			Use:   "parse-timecode TIMECODE",
			Short: "Print the milliseconds and timestamp of a timecode",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tb, err := o.timebase()
				if err != nil {
					return err
				}
				tc, ok := mediatime.ParseTimecode(args[0], tb)
				if !ok {
					return errors.Errorf("%q is not a timecode", args[0])
				}
				t := tc.Time()
				o.log.WithField("frames", tc.Frames()).Debug("parsed timecode")
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", t.Milliseconds(), mediatime.TimestampFromTime(t))
				return nil
			},
		},
		&cobra.Command{
			Use:   "parse-timestamp TIMESTAMP",
			Short: "Print the milliseconds and timecode of a timestamp",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tb, err := o.timebase()
				if err != nil {
					return err
				}
				ts, err := mediatime.ParseTimestamp(args[0])
				if err != nil {
					return err
				}
				t := ts.Time()
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", t.Milliseconds(), mediatime.TimecodeFromTime(t, tb))
				return nil
			},
		},
	)
	return root
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
