package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/unkn0wn-root/livereq/internal/catalog"
	"github.com/unkn0wn-root/livereq/internal/config"
	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
	"github.com/unkn0wn-root/livereq/internal/httpclient"
	"github.com/unkn0wn-root/livereq/internal/telemetry"
)

// globalOptions are the flags shared by every command. A flag only
// overrides the settings file when it was set explicitly.
type globalOptions struct {
	baseURL     string
	routePrefix string
	timeout     string
	insecure    bool
	follow      bool
	proxy       string
	http2       bool
	catalog     string

	otelEndpoint string
	otelInsecure bool
	otelService  string
}

func (o *globalOptions) register(fs *pflag.FlagSet) {
	otel := telemetry.ConfigFromEnv(os.Getenv)

	fs.StringVar(&o.baseURL, "base-url", config.DefaultBaseURL, "Server base URL")
	fs.StringVar(&o.routePrefix, "route", config.DefaultRoutePrefix, "Route prefix appended to the base URL")
	fs.StringVar(&o.timeout, "timeout", "", "Request timeout, e.g. 30s (default none)")
	fs.BoolVar(&o.insecure, "insecure", false, "Skip TLS certificate verification")
	fs.BoolVar(&o.follow, "follow", true, "Follow redirects")
	fs.StringVar(&o.proxy, "proxy", "", "HTTP proxy URL")
	fs.BoolVar(&o.http2, "http2", false, "Negotiate HTTP/2 over TLS")
	fs.StringVar(&o.catalog, "catalog", "", "Call list or OpenAPI document for the try-it picker")
	fs.StringVar(&o.otelEndpoint, "otel-endpoint", otel.Endpoint, "OTLP collector endpoint for request spans")
	fs.BoolVar(&o.otelInsecure, "otel-insecure", otel.Insecure, "Disable TLS for OTLP export")
	fs.StringVar(&o.otelService, "otel-service", otel.ServiceName, "service.name attribute for exported spans")
}

// resolveSettings loads the settings file and layers explicitly set flags
// on top of it.
func (o *globalOptions) resolveSettings(fs *pflag.FlagSet) (config.Settings, error) {
	settings, _, err := config.LoadSettings()
	if err != nil {
		return config.Settings{}, err
	}
	if fs.Changed("base-url") {
		settings.BaseURL = o.baseURL
	}
	if fs.Changed("route") {
		settings.RoutePrefix = o.routePrefix
	}
	if fs.Changed("timeout") {
		settings.Timeout = o.timeout
	}
	if fs.Changed("insecure") {
		settings.Insecure = o.insecure
	}
	if fs.Changed("follow") {
		follow := o.follow
		settings.FollowRedirects = &follow
	}
	if fs.Changed("proxy") {
		settings.Proxy = o.proxy
	}
	if fs.Changed("http2") {
		settings.HTTP2 = o.http2
	}
	if fs.Changed("catalog") {
		settings.Catalog = o.catalog
	}
	return config.Normalise(settings), nil
}

func httpOptionsFor(settings config.Settings) (httpclient.Options, error) {
	timeout, err := settings.RequestTimeout()
	if err != nil {
		return httpclient.Options{}, err
	}
	return httpclient.Options{
		Timeout:            timeout,
		FollowRedirects:    settings.FollowsRedirects(),
		InsecureSkipVerify: settings.Insecure,
		ProxyURL:           strings.TrimSpace(settings.Proxy),
		HTTP2:              settings.HTTP2,
	}, nil
}

func (o *globalOptions) telemetryConfig() telemetry.Config {
	cfg := telemetry.ConfigFromEnv(os.Getenv)
	cfg.Endpoint = strings.TrimSpace(o.otelEndpoint)
	cfg.Insecure = o.otelInsecure
	cfg.ServiceName = strings.TrimSpace(o.otelService)
	cfg.Version = version
	return cfg
}

// newClient builds the HTTP client with tracing attached. The returned
// func flushes spans and must be called before exit.
func (o *globalOptions) newClient() (*httpclient.Client, func()) {
	client := httpclient.NewClient()
	cfg := o.telemetryConfig()
	provider, err := telemetry.New(cfg)
	if err != nil {
		log.Printf("telemetry init error: %v", err)
		return client, func() {}
	}
	client.SetTelemetry(provider)
	return client, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}
}

func loadCatalog(ctx context.Context, settings config.Settings) ([]catalog.Entry, error) {
	path := strings.TrimSpace(settings.Catalog)
	if path == "" {
		return nil, nil
	}
	return catalog.LoadFile(ctx, path, catalog.Options{RoutePrefix: settings.RoutePrefix})
}

func findEntry(entries []catalog.Entry, name string) (catalog.Entry, error) {
	want := strings.TrimSpace(name)
	for _, e := range entries {
		if strings.EqualFold(e.Name, want) {
			return e, nil
		}
	}
	return catalog.Entry{}, errdef.New(errdef.CodeConfig, "catalog entry %q not found", want)
}

// parseHeaderFlags turns repeated "Name: value" flags into form rows,
// keeping their order.
func parseHeaderFlags(raw []string) ([]form.HeaderEntry, error) {
	out := make([]form.HeaderEntry, 0, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, ":")
		if !ok {
			return nil, errdef.New(errdef.CodeConfig, "header %q must look like Name: value", item)
		}
		out = append(out, form.HeaderEntry{
			Key:   strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return out, nil
}

func addGlobalFlags(cmd *cobra.Command, o *globalOptions) {
	o.register(cmd.PersistentFlags())
}
