package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func (c *cli) newPinCmd() *cobra.Command {
	pin := &cobra.Command{
		Use:   "pin",
		Short: "Manage the vault PIN",
	}

	pin.AddCommand(
		&cobra.Command{
			Use:   "set",
			Short: "Set or replace the PIN",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.app.SetPin(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "PIN set. The vault is locked.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the PIN",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.app.ClearPin(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "PIN removed.")
				return nil
			},
		},
	)
	return pin
}

func (c *cli) newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Check the PIN and unlock the vault",
		Args:  cobra.NoArgs,
		RunE: c.unlocked(func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Unlocked.")
			return nil
		}),
	}
}

func (c *cli) newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Lock the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Services.Lock.Lock(cmd.Context()); err != nil {
				return err
			}
			// the shell announces every lock itself
			if !c.inShell {
				fmt.Fprintln(cmd.OutOrStdout(), "Locked.")
			}
			return nil
		},
	}
}

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the lock state and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := c.app.Services.SettingsService.Get(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "State:           %s\n", c.app.Services.Lock.State())
			fmt.Fprintf(out, "Auto-lock after: %d min\n", settings.AutoLockTimeoutMinutes)
			fmt.Fprintf(out, "Clipboard clear: %d s\n", settings.ClipboardClearSeconds)
			return nil
		},
	}
}

func (c *cli) newTimeoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeout [minutes]",
		Short: "Show or set the auto-lock timeout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				minutes, err := c.app.Services.Lock.Timeout(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\n", minutes)
				return nil
			}

			minutes, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid minutes %q", args[0])
			}
			if err = c.app.Unlock(cmd.Context()); err != nil {
				return err
			}
			return c.app.Services.SettingsService.SetAutoLockTimeout(cmd.Context(), int32(minutes))
		},
	}
}

func (c *cli) newClipboardClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clipboard-clear <seconds>",
		Short: "Set how long copied secrets stay on the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid seconds %q", args[0])
			}
			return c.app.Services.SettingsService.SetClipboardClear(cmd.Context(), int32(seconds))
		}),
	}
}
