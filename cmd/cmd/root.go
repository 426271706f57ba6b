package cmd

import (
	"io"

	"github.com/ostafen/apngkit/internal/env"
	"github.com/ostafen/apngkit/internal/logger"
	"github.com/ostafen/apngkit/internal/task"
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRootCommand().Execute()
}

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - split and merge animated PNG files",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "minimum level of console and log file messages (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("log-file", "", "write a detailed log to the specified file")
	rootCmd.PersistentFlags().Bool("no-progress", false, "disable the progress bar")

	rootCmd.AddCommand(
		DefineSplitCommand(),
		DefineMergeCommand(),
		DefineInfoCommand(),
		DefineMountCommand(),
	)
	return rootCmd
}

func consoleLogger(cmd *cobra.Command) *logger.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(cmd.OutOrStdout(), logger.ParseLevel(level))
}

func parseLogOptions(cmd *cobra.Command) task.LogOptions {
	level, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")

	return task.LogOptions{
		LogFile:  logFile,
		LogLevel: logger.ParseLevel(level).Slog(),
	}
}

func progressOutput(cmd *cobra.Command) io.Writer {
	if disabled, _ := cmd.Flags().GetBool("no-progress"); disabled {
		return nil
	}
	return cmd.OutOrStdout()
}
