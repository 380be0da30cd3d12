package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-guard/internal/generator"
)

const maxGenerateCount = 100

// generateFlags maps the command line onto generator.Options.
type generateFlags struct {
	length         int
	noLowercase    bool
	noUppercase    bool
	noDigits       bool
	noSymbols      bool
	allowAmbiguous bool
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.length, "length", "l", generator.DefaultLength,
		fmt.Sprintf("Password length (%d-%d)", generator.MinLength, generator.MaxLength))
	cmd.Flags().BoolVar(&f.noLowercase, "no-lowercase", false, "Exclude lowercase letters")
	cmd.Flags().BoolVar(&f.noUppercase, "no-uppercase", false, "Exclude uppercase letters")
	cmd.Flags().BoolVar(&f.noDigits, "no-digits", false, "Exclude digits")
	cmd.Flags().BoolVar(&f.noSymbols, "no-symbols", false, "Exclude symbols")
	cmd.Flags().BoolVar(&f.allowAmbiguous, "allow-ambiguous", false, "Allow look-alike characters such as 0/O and 1/l")
}

func (f *generateFlags) options() generator.Options {
	return generator.Options{
		Length:         f.length,
		Lowercase:      !f.noLowercase,
		Uppercase:      !f.noUppercase,
		Digits:         !f.noDigits,
		Symbols:        !f.noSymbols,
		AvoidAmbiguous: !f.allowAmbiguous,
	}
}

func (c *cli) newGenerateCmd() *cobra.Command {
	var (
		flags generateFlags
		count int
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random passwords",
		Long: `Print random passwords. Each password holds at least one character of
every selected set. Nothing is stored.`,
		Args: cobra.NoArgs,
		// does not open the vault
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 || count > maxGenerateCount {
				return fmt.Errorf("count must be between 1 and %d", maxGenerateCount)
			}

			for range count {
				password, err := generator.Generate(flags.options())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), password)
				if count == 1 {
					fmt.Fprintf(cmd.ErrOrStderr(), "Strength: %s\n", generator.Evaluate(password))
				}
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, fmt.Sprintf("Number of passwords (1-%d)", maxGenerateCount))
	return cmd
}
