package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/runoshun/present-tense/internal/app"
	"github.com/runoshun/present-tense/internal/domain"
	"github.com/runoshun/present-tense/internal/infra/config"
	"github.com/runoshun/present-tense/internal/infra/crypto"
	"github.com/runoshun/present-tense/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage the present-tense configuration file.

The file lives at $XDG_CONFIG_HOME/present-tense/config.toml
(~/.config/present-tense/config.toml by default).`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))
	cmd.AddCommand(newConfigKeygenCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the configuration file location and the effective configuration
after merging the file over the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded file section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			if out.File.Exists {
				_, _ = fmt.Fprintf(w, "- %s\n", out.File.Path)
			} else {
				_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.File.Path)
			}
			_, _ = fmt.Fprintf(w, "\n[Data]\n- %s\n\n", c.Config.DataDir)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// formatEffectiveConfig encodes cfg as TOML with the encryption key redacted.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	shown := *cfg
	if shown.Store.EncryptionKey != "" {
		shown.Store.EncryptionKey = "(set)"
	}
	if err := toml.NewEncoder(w).Encode(shown); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output the commented configuration template to stdout.

It does not read the existing configuration file and works even if it is broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Backend   string
		WeekStart string
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file",
		Long: `Generate the configuration file from the commented template.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := domain.NewDefaultConfig()
			switch opts.Backend {
			case domain.BackendFile, domain.BackendGit, domain.BackendSQLite:
				cfg.Store.Backend = opts.Backend
			default:
				return fmt.Errorf("%w: %q (want file, git or sqlite)", domain.ErrInvalidBackend, opts.Backend)
			}
			if _, ok := domain.ParseWeekday(opts.WeekStart); !ok {
				return fmt.Errorf("invalid week start %q", opts.WeekStart)
			}
			cfg.Calendar.WeekStart = opts.WeekStart

			// The container is nil when the existing setup could not be loaded.
			uc := usecase.NewInitConfig(config.NewManager())
			if c != nil {
				uc = c.InitConfigUseCase()
			}
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{Config: cfg})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Backend, "backend", domain.BackendFile, "Store backend: file, git or sqlite")
	cmd.Flags().StringVar(&opts.WeekStart, "week-start", domain.DefaultWeekStart, "First day of the week")

	return cmd
}

// newConfigKeygenCommand creates the config keygen subcommand.
func newConfigKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate an encryption key for the git backend",
		Long: `Generate a random key for [store] encryption_key.

With a key set, the git backend stores every blob encrypted (AES-256-GCM).
Keep the key safe: data written with it cannot be read without it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
