package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-guard/internal/app"
)

func (c *cli) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively with auto-lock",
		Long: `Start an interactive session. The vault stays unlocked between commands
until it is locked explicitly or the auto-lock timeout passes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.inShell {
				return errors.New("already in the shell")
			}
			c.inShell = true
			defer func() { c.inShell = false }()

			fmt.Fprintln(cmd.OutOrStdout(), `Type "help" for commands, "exit" to leave.`)
			return c.app.RunShell(cmd.Context(), func(ctx context.Context, args []string) error {
				root := c.newRootCmd()
				root.SetArgs(args)
				if err := root.ExecuteContext(ctx); err != nil {
					return errors.New(app.UserMessage(err))
				}
				return nil
			})
		},
	}
}

func (c *cli) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// does not open the vault
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Build version: %s\n", c.buildInfo.BuildVersion())
			fmt.Fprintf(out, "Build date: %s\n", c.buildInfo.BuildDate())
			fmt.Fprintf(out, "Build commit: %s\n", c.buildInfo.BuildCommit())
		},
	}
}
