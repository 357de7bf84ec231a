package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/livereq/internal/config"
	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
	"github.com/unkn0wn-root/livereq/internal/hook"
	"github.com/unkn0wn-root/livereq/internal/liveclient"
	"github.com/unkn0wn-root/livereq/internal/ui"
)

type hookOptions struct {
	enabled     bool
	addr        string
	allowOrigin string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	hookOpts := &hookOptions{}

	cmd := &cobra.Command{
		Use:   "livereq",
		Short: "Send requests to a live server from a terminal form",
		Long: heredoc.Doc(`
			livereq is a small request form for poking a running API.

			Type an endpoint, which is appended to the base URL and route
			prefix, adjust headers, method and body, then submit. The reply
			is shown pretty-printed when it is JSON or XML.

			Settings are read from settings.toml (or settings.json) in the
			config directory; flags override them.
		`),
		Example: heredoc.Doc(`
			livereq
			livereq --base-url https://hapi.example.org --route /fhir/
			livereq --catalog calls.yaml --hook
		`),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts, hookOpts)
		},
	}
	addGlobalFlags(cmd, opts)

	flags := cmd.Flags()
	flags.BoolVar(&hookOpts.enabled, "hook", false, "Accept calls posted to the local hook endpoint")
	flags.StringVar(&hookOpts.addr, "hook-addr", config.DefaultHookAddr, "Listen address for the hook endpoint")
	flags.StringVar(&hookOpts.allowOrigin, "hook-allow-origin", "", "Origin allowed to call the hook from a browser")

	cmd.AddCommand(newSendCmd(opts), newCatalogCmd(opts), newVersionCmd(), newConfigCmd())
	return cmd
}

func runTUI(cmd *cobra.Command, opts *globalOptions, hookOpts *hookOptions) error {
	flags := cmd.Flags()
	settings, err := opts.resolveSettings(flags)
	if err != nil {
		return err
	}
	if flags.Changed("hook") {
		settings.Hook.Enabled = hookOpts.enabled
	}
	if flags.Changed("hook-addr") {
		settings.Hook.Addr = hookOpts.addr
	}
	if flags.Changed("hook-allow-origin") {
		settings.Hook.AllowOrigin = hookOpts.allowOrigin
	}

	httpOpts, err := httpOptionsFor(settings)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(config.Dir(), 0o755); err == nil {
		logFile, logErr := tea.LogToFile(config.LogPath(), "livereq")
		if logErr == nil {
			defer func() { _ = logFile.Close() }()
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	entries, err := loadCatalog(ctx, settings)
	if err != nil {
		return err
	}

	client, shutdown := opts.newClient()
	defer shutdown()

	model := ui.New(ui.Config{
		Controller:  liveclient.New(settings.Prefix()),
		Client:      client,
		HTTPOptions: httpOpts,
		Catalog:     entries,
		Profile:     termenv.ColorProfile(),
		Version:     version,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())

	if settings.Hook.Enabled {
		srv := hook.New(hook.Config{
			Addr:        strings.TrimSpace(settings.Hook.Addr),
			AllowOrigin: settings.Hook.AllowOrigin,
		}, func(call form.Call) {
			program.Send(ui.CallMsg{Call: call})
		})
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("hook stopped: %v", err)
			}
		}()
	}

	if _, err := program.Run(); err != nil {
		return errdef.Wrap(errdef.CodeUnknown, err, "run terminal UI")
	}
	return nil
}
