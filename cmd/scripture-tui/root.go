package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scripture-tui/internal/api"
	"scripture-tui/internal/history"
	"scripture-tui/internal/logging"
	"scripture-tui/internal/schema"
	"scripture-tui/internal/settings"
	"scripture-tui/internal/ui"
)

type globalFlags struct {
	configPath string
	apiURL     string
	versionID  int
	debug      bool
}

// env is what every subcommand needs after flags are parsed.
type env struct {
	cfg    *settings.Config
	logger *zap.Logger
}

func (f *globalFlags) load(cmd *cobra.Command) (*env, error) {
	cfg, err := settings.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("version-id") {
		cfg.VersionID = f.versionID
	}
	if f.debug {
		cfg.Debug = true
	}

	logger, err := logging.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, logger: logger}, nil
}

// client returns an API client for side, honoring --api.
func (f *globalFlags) client(e *env, side settings.Side) *api.Client {
	base := f.apiURL
	if base == "" {
		base = e.cfg.APIBase(side)
	}
	return api.NewClient(base, api.WithLogger(e.logger.Named("api")))
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	var ref string

	cmd := &cobra.Command{
		Use:           "scripture-tui",
		Short:         "Read scripture in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = e.logger.Sync() }()

			store, err := history.Open(e.cfg.HistoryDir, history.WithLogger(e.logger.Named("history")))
			if err != nil {
				return err
			}

			start, err := startReference(cmd.Context(), ref, store)
			if err != nil {
				return err
			}

			e.logger.Info("starting reader",
				zap.String("ref", start.String()),
				zap.Int("version_id", e.cfg.VersionID))

			model := ui.NewModel(ui.Options{
				Client:  flags.client(e, settings.Public),
				History: store,
				Config:  e.cfg,
				Logger:  e.logger,
				Start:   start,
			})
			defer model.Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running reader: %w", err)
			}
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/scripture-tui/config.yaml)")
	pf.StringVar(&flags.apiURL, "api", "", "API base URL, overrides the configured one")
	pf.IntVar(&flags.versionID, "version-id", 0, "version to read")
	pf.BoolVar(&flags.debug, "debug", false, "log at debug level")
	cmd.Flags().StringVarP(&ref, "ref", "r", "", `reference to open, e.g. "john 3:16"`)

	cmd.AddCommand(newVersionsCmd(flags), newHistoryCmd(flags))
	return cmd
}

// startReference resolves where the reader opens: --ref, else the last
// chapter read, else Genesis 1.
func startReference(ctx context.Context, ref string, store *history.Store) (schema.Reference, error) {
	if ref != "" {
		return schema.ParseReference(ref)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	last, ok, err := store.Latest(ctx)
	if err != nil {
		return schema.Reference{}, err
	}
	if ok {
		if book, found := schema.BookByAbbreviation(last.Book); found {
			r := schema.Reference{Book: book, Chapter: last.Chapter}
			if last.Verse != nil {
				r.Verse = *last.Verse
			}
			return r, nil
		}
	}

	gen, _ := schema.BookByAbbreviation("gen")
	return schema.Reference{Book: gen, Chapter: 1}, nil
}
