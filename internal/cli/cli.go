// Package cli defines the command-line interface. The root command runs
// the tray; the hidden popup subcommand is what the tray executes to
// open the detail window in its own process.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/claudeutils/usage-tray/internal/api"
	"github.com/claudeutils/usage-tray/internal/config"
	"github.com/claudeutils/usage-tray/internal/i18n"
	"github.com/claudeutils/usage-tray/internal/logging"
	"github.com/claudeutils/usage-tray/internal/notify"
	"github.com/claudeutils/usage-tray/internal/popup"
	"github.com/claudeutils/usage-tray/internal/theme"
	"github.com/claudeutils/usage-tray/internal/tray"
	"github.com/claudeutils/usage-tray/internal/version"
)

var (
	flagDebug bool
	flagToken string
)

// Execute parses arguments and runs the selected command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "usage-tray",
		Short: "System tray monitor for Claude usage limits",
		Long: `usage-tray shows Claude session and weekly usage as a system tray
icon. It reads the OAuth token from the Claude Code credential store
(~/.claude/.credentials.json) and polls the Anthropic usage endpoint.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTray()
		},
	}

	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	root.PersistentFlags().StringVar(&flagToken, "token", "", "OAuth access token (overrides the credential store)")

	root.AddCommand(newPopupCmd(), newVersionCmd())
	return root
}

func newPopupCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "popup",
		Short:  "Open the usage detail window",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPopup()
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("usage-tray %s (built %s)\n", version.Version, version.BuildTime)
		},
	}
}

// env bundles the collaborators both processes share.
type env struct {
	settings *config.Settings
	creds    *config.CredentialSource
	client   *api.Client
	tr       *i18n.Translator
	logger   zerolog.Logger
}

// buildEnv loads settings and constructs the shared collaborators.
// proc names the log file ("tray" or "popup").
func buildEnv(proc string) *env {
	settings, err := config.LoadSettings(config.SettingsPath())
	if err != nil {
		settings = config.NewSettings()
	}

	logger := logging.New(proc, flagDebug || settings.UI.Debug)
	if err != nil {
		logger.Warn().Err(err).Msg("settings file ignored")
	}

	creds := config.NewCredentialSource(flagToken)
	return &env{
		settings: settings,
		creds:    creds,
		client:   api.NewClient(creds, logger),
		tr:       i18n.New(settings.UI.Language),
		logger:   logger,
	}
}

func runTray() (err error) {
	e := buildEnv("tray")
	e.logger.Info().Str("version", version.Version).Msg("starting tray")

	// Fetch errors never reach this level; a panic in the run loop is the
	// only fatal path, logged before the process exits nonzero.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("tray crashed")
			err = fmt.Errorf("tray crashed: %v", r)
		}
	}()

	tray.Run(tray.Options{
		Client:      e.client,
		Credentials: e.creds,
		Settings:    e.settings,
		Translator:  e.tr,
		Notifier:    notify.NewNotifier(e.settings.Notifications.Enabled, e.tr, e.logger),
		ThemeSource: theme.NewSource(),
		Logger:      e.logger,
	})
	return nil
}

func runPopup() error {
	e := buildEnv("popup")

	popup.Run(popup.Options{
		Client:     e.client,
		Translator: e.tr,
		Logger:     e.logger,
	})
	return nil
}
