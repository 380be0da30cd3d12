package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-guard/internal/client"
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

// cli holds the state shared by every command of one process. In the
// interactive shell each line builds a fresh command tree around the same
// cli, so the vault stays open and unlocked between lines.
type cli struct {
	buildInfo models.AppBuildInfo
	app       *client.App
	logger    *logger.Logger
	prompter  client.Prompter
	out       io.Writer
	errOut    io.Writer
	inShell   bool
}

func newCLI(buildInfo models.AppBuildInfo) *cli {
	return &cli{
		buildInfo: buildInfo,
		prompter:  client.NewTerminalPrompter(os.Stdin, os.Stderr),
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pass-guard",
		Short:         "Local password vault protected by a PIN",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.open(cmd); err != nil {
				return err
			}
			// repositories log through the context logger
			cmdLog := c.logger.With().Str("command", cmd.CommandPath()).Logger()
			cmd.SetContext(cmdLog.WithContext(cmd.Context()))
			return nil
		},
	}
	root.SetOut(c.out)
	root.SetErr(c.errOut)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		c.newPinCmd(),
		c.newUnlockCmd(),
		c.newLockCmd(),
		c.newStatusCmd(),
		c.newTimeoutCmd(),
		c.newClipboardClearCmd(),
		c.newCredentialCmd(),
		c.newCategoryCmd(),
		c.newExportCmd(),
		c.newImportCmd(),
		c.newGenerateCmd(),
		c.newShellCmd(),
		c.newVersionCmd(),
	)
	return root
}

// open builds the App on first use.
func (c *cli) open(cmd *cobra.Command) error {
	if c.app != nil {
		return nil
	}

	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	c.logger = logger.NewClientLogger("go-pass-client", filepath.Join(cfg.App.DataDir, "logs"), cfg.App.LogLevel)

	app, err := client.NewApp(cmd.Context(), cfg, c.prompter, cmd.ErrOrStderr(), c.logger)
	if err != nil {
		c.logger.Err(err).Str("func", "cli.open").Msg("failed to open vault")
		return err
	}
	c.app = app
	return nil
}

func (c *cli) close() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close(context.Background())
	c.app = nil
	return err
}

// unlocked returns a RunE that prompts for the PIN before running fn.
func (c *cli) unlocked(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := c.app.Unlock(cmd.Context()); err != nil {
			return err
		}
		return fn(cmd, args)
	}
}
