package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-pass-guard/internal/generator"
	"github.com/MKhiriev/go-pass-guard/models"
)

func (c *cli) newCredentialCmd() *cobra.Command {
	credential := &cobra.Command{
		Use:     "credential",
		Aliases: []string{"cred"},
		Short:   "Manage credentials",
	}

	credential.AddCommand(
		c.newCredentialAddCmd(),
		c.newCredentialEditCmd(),
		c.newCredentialShowCmd(),
		c.newCredentialListCmd(),
		c.newCredentialCopyCmd(),
		c.newCredentialFavoriteCmd(),
		c.newCredentialDeleteCmd(),
	)
	return credential
}

// credentialFlags are the plain fields settable from the command line.
// Password and notes are sealed, so they are prompted for and never taken
// from arguments.
type credentialFlags struct {
	title    string
	username string
	url      string
	notes    bool
	generate bool
	category int64
	favorite bool
}

func (f *credentialFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Title")
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "Username")
	cmd.Flags().StringVar(&f.url, "url", "", "URL")
	cmd.Flags().BoolVarP(&f.notes, "notes", "n", false, "Prompt for notes, stored encrypted; an empty answer clears them")
	cmd.Flags().BoolVarP(&f.generate, "generate", "g", false, "Generate a random password instead of prompting")
	cmd.Flags().Int64Var(&f.category, "category", 0, "Category id, 0 for none")
	cmd.Flags().BoolVar(&f.favorite, "favorite", false, "Mark as favorite")
}

// apply copies the flags that were set on cmd into p.
func (f *credentialFlags) apply(cmd *cobra.Command, p *models.PlainCredential) {
	changed := cmd.Flags().Changed
	if changed("title") {
		p.Title = f.title
	}
	if changed("username") {
		p.Username = f.username
	}
	if changed("url") {
		p.URL = f.url
	}
	if changed("category") {
		p.CategoryID = categoryRef(f.category)
	}
	if changed("favorite") {
		p.Favorite = f.favorite
	}
}

// readSealed fills the password and, when asked, the notes of p from the
// prompter. The password is generated instead when f.generate is set.
func (c *cli) readSealed(cmd *cobra.Command, f *credentialFlags, p *models.PlainCredential, askPassword bool) error {
	switch {
	case f.generate:
		password, err := generator.Generate(generator.DefaultOptions())
		if err != nil {
			return err
		}
		p.Password = password
	case askPassword:
		password, err := c.app.ReadConfirmed("Password: ", "Repeat password: ")
		if err != nil {
			return err
		}
		p.Password = password
	}
	if f.generate || askPassword {
		fmt.Fprintf(cmd.OutOrStdout(), "Password strength: %s\n", generator.Evaluate(p.Password))
	}

	if f.notes {
		notes, err := c.app.ReadSecret("Notes: ")
		if err != nil {
			return err
		}
		p.Notes = notes
	}
	return nil
}

func categoryRef(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func (c *cli) newCredentialAddCmd() *cobra.Command {
	var flags credentialFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a credential",
		Args:  cobra.NoArgs,
		RunE: c.unlocked(func(cmd *cobra.Command, _ []string) error {
			var p models.PlainCredential
			flags.apply(cmd, &p)

			if err := c.readSealed(cmd, &flags, &p, true); err != nil {
				return err
			}

			id, err := c.app.Services.CredentialService.Create(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credential %d added.\n", id)
			return nil
		}),
	}
	flags.register(cmd)
	return cmd
}

func (c *cli) newCredentialEditCmd() *cobra.Command {
	var (
		flags       credentialFlags
		newPassword bool
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a credential",
		Args:  cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			p, err := c.app.Services.CredentialService.Reveal(cmd.Context(), id)
			if err != nil {
				return err
			}
			flags.apply(cmd, &p)

			if err = c.readSealed(cmd, &flags, &p, newPassword); err != nil {
				return err
			}

			if err = c.app.Services.CredentialService.Update(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credential %d updated.\n", id)
			return nil
		}),
	}
	flags.register(cmd)
	cmd.Flags().BoolVarP(&newPassword, "password", "p", false, "Prompt for a new password")
	cmd.MarkFlagsMutuallyExclusive("password", "generate")
	return cmd
}

func (c *cli) newCredentialShowCmd() *cobra.Command {
	var reveal bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a credential",
		Args:  cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			p, err := c.app.Services.CredentialService.Reveal(cmd.Context(), id)
			if err != nil {
				return err
			}

			password := "********"
			if reveal {
				password = p.Password
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "ID:\t%d\n", p.ID)
			fmt.Fprintf(w, "Title:\t%s\n", p.Title)
			fmt.Fprintf(w, "Username:\t%s\n", p.Username)
			fmt.Fprintf(w, "Password:\t%s\n", password)
			fmt.Fprintf(w, "URL:\t%s\n", p.URL)
			fmt.Fprintf(w, "Notes:\t%s\n", p.Notes)
			if p.CategoryID != nil {
				fmt.Fprintf(w, "Category:\t%d\n", *p.CategoryID)
			}
			fmt.Fprintf(w, "Favorite:\t%t\n", p.Favorite)
			fmt.Fprintf(w, "Updated:\t%s\n", time.UnixMilli(p.UpdatedAt).Format(time.DateTime))
			return w.Flush()
		}),
	}
	cmd.Flags().BoolVarP(&reveal, "reveal", "r", false, "Print the password")
	return cmd
}

func (c *cli) newCredentialListCmd() *cobra.Command {
	var (
		filter   models.CredentialFilter
		category int64
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List or search credentials",
		Args:    cobra.NoArgs,
		RunE: c.unlocked(func(cmd *cobra.Command, _ []string) error {
			filter.CategoryID = categoryRef(category)

			credentials, err := c.app.Services.CredentialService.Search(cmd.Context(), filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tUSERNAME\tURL\tFAV")
			for _, cred := range credentials {
				fav := ""
				if cred.Favorite {
					fav = "*"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", cred.ID, cred.Title, cred.Username, cred.URL, fav)
			}
			return w.Flush()
		}),
	}
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Match title, username, URL or notes")
	cmd.Flags().Int64Var(&category, "category", 0, "Only this category id")
	cmd.Flags().BoolVar(&filter.FavoritesOnly, "favorites", false, "Only favorites")
	cmd.Flags().BoolVar(&filter.RecentOnly, "recent", false, "Only updated within the last 7 days")
	return cmd
}

func (c *cli) newCredentialCopyCmd() *cobra.Command {
	var field string
	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy the password to the clipboard",
		Long: `Copy the password (or username) to the clipboard. Outside the shell the
command waits until the clipboard is cleared; interrupt it to clear early.`,
		Args: cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			p, err := c.app.Services.CredentialService.Reveal(cmd.Context(), id)
			if err != nil {
				return err
			}

			var text string
			switch field {
			case "password":
				text = p.Password
			case "username":
				text = p.Username
			default:
				return fmt.Errorf("unknown field %q", field)
			}

			clearAt, err := c.app.Services.ClipboardService.Copy(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s of %q. Clipboard clears at %s.\n", field, p.Title, clearAt.Format(time.TimeOnly))

			if !c.inShell {
				c.app.Services.ClipboardService.Wait()
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&field, "field", "f", "password", "password or username")
	return cmd
}

func (c *cli) newCredentialFavoriteCmd() *cobra.Command {
	var off bool
	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark a credential as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.app.Services.CredentialService.SetFavorite(cmd.Context(), id, !off)
		}),
	}
	cmd.Flags().BoolVar(&off, "off", false, "Remove the mark instead")
	return cmd
}

func (c *cli) newCredentialDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a credential",
		Args:    cobra.ExactArgs(1),
		RunE: c.unlocked(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err = c.app.Services.CredentialService.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Credential %d deleted.\n", id)
			return nil
		}),
	}
}
