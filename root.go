package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	lineMode     bool
	settingsPath string
	logPath      string

	// logFile is closed by Execute once the command has finished.
	logFile io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot [FILE]",
	Short: "A minimal editor for a single plain text file",
	Long: `jot edits one plain text file at a time. It reopens the file you had open
last time, marks the title with * while the text differs from the file on disk
and asks before throwing unsaved changes away.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		// the terminal belongs to the editor, so logs only go to a file when asked for
		var w io.Writer = io.Discard
		if logPath != "" {
			f, err := os.OpenFile(logPath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
			if err != nil {
				return errors.Wrap(err, "open log")
			}
			logFile = f
			w = f
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(w, opts))
		slog.SetDefault(logger)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		file := ""
		if len(args) > 0 {
			file = args[0]
		}
		return run(cmd.Context(), file, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().BoolVarP(&lineMode, "line", "l", false, "Read commands line by line instead of using the full screen")
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file (default is settings.yaml in the user config dir)")
	rootCmd.Flags().StringVar(&logPath, "log", "", "Append log output to this file")
}
