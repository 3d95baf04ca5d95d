package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"winleap/internal/app"
)

var opts app.Options

func main() {
	root := &cobra.Command{
		Use:   "winleap",
		Short: "Jump to application windows by typed prefix or numeric mark",
		Long: `winleap activates application windows without spatial navigation.

Run without arguments for prefix mode: the keyboard is captured and each
window is addressable by the shortest unique prefix of its application
class (two dolphin windows become "do1" and "do2"). Typing narrows the
candidates; the window activates as soon as exactly one remains.

Use "winleap mark <n>" to jump straight to the application bound to a
numeric mark in the config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunPrefix()
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file")
	root.PersistentFlags().BoolVar(&opts.CurrentWorkspace, "current-workspace", false, "only consider windows on the current workspace")
	root.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "force debug logging for this run")

	markCmd := &cobra.Command{
		Use:   "mark <number>",
		Short: "Activate the window bound to a numeric mark",
		Long: `Activate a window of the application bound to <number> in the config
(lines of the form "<number>=<wm_class>"). With several instances open,
each is paired with a selector key from instance_keys and the next
matching keypress picks one; --cycle instead hops to the instance after
the currently focused one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mark, err := strconv.Atoi(args[0])
			if err != nil || mark <= 0 {
				return fmt.Errorf("invalid mark number: %s", args[0])
			}
			a, err := app.New(opts)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.RunMark(mark)
		},
	}
	markCmd.Flags().BoolVar(&opts.Cycle, "cycle", false, "cycle to the next instance instead of prompting")
	root.AddCommand(markCmd)

	root.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Print the debug log path and contents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.PrintDebugLog(os.Stdout)
		},
	})

	if err := root.Execute(); err != nil {
		if !app.Silent(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(app.ExitCode(err))
	}
}
