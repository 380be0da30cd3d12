package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write a passphrase-protected backup",
		Long: `Write every credential and category to an encrypted backup file.

Passwords and notes stay encrypted with this device's key inside the backup,
so the file can only be restored on this device.`,
		Args: cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			passphrase, err := c.app.ReadConfirmed("Backup passphrase: ", "Repeat passphrase: ")
			if err != nil {
				return err
			}

			if err = c.app.Services.TransferService.Export(cmd.Context(), args[0], passphrase); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s.\n", args[0])
			return nil
		}),
	}
}

func (c *cli) newImportCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the vault contents with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := c.prompter.ReadLine("This replaces every credential and category. Continue? [y/N] ")
				if err != nil {
					return err
				}
				if answer != "y" && answer != "Y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			passphrase, err := c.app.ReadSecret("Backup passphrase: ")
			if err != nil {
				return err
			}

			res, err := c.app.Services.TransferService.Import(cmd.Context(), args[0], passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d credentials and %d categories.\n", res.Credentials, res.Categories)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
