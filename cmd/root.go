package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/josephlewis42/rsh/core/config"
	"github.com/josephlewis42/rsh/core/logger"
	"github.com/josephlewis42/rsh/core/shell"
	"github.com/spf13/cobra"
)

// rootCmd starts an interactive shell on the command's standard streams.
var rootCmd = &cobra.Command{
	Use:   "rsh",
	Short: "A minimal interactive command shell",
	Long: `rsh reads a line at a time, splits it on whitespace and runs either a
builtin (cd, help, exit) or the named program, waiting for it to finish.

Set RSH_CONFIG to a directory containing config.yaml to change the defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		appLog := log.New(io.Discard, "", 0)
		appLogFd, err := cfg.OpenAppLog()
		if err != nil {
			return err
		}
		if appLogFd != nil {
			defer appLogFd.Close()
			appLog = log.New(appLogFd, "[rsh] ", log.LstdFlags)
		}

		events := logger.NewNopLogger()
		eventLogFd, err := cfg.OpenEventLog()
		if err != nil {
			return err
		}
		if eventLogFd != nil {
			defer eventLogFd.Close()
			events = logger.NewJsonLinesLogRecorder(eventLogFd)
		}

		sh := shell.New(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		sh.Log = appLog
		sh.Events = events.NewSession()
		appLog.Printf("session %s started", sh.Events.SessionID())

		// The shell reports its own failures.
		cmd.SilenceErrors = true
		err = sh.Run()
		appLog.Printf("session %s ended: %v", sh.Events.SessionID(), err)
		return err
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
