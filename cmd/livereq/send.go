package main

import (
	"fmt"
	"io"
	"log"

	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/livereq/internal/form"
	"github.com/unkn0wn-root/livereq/internal/liveclient"
)

type sendOptions struct {
	method   string
	headers  []string
	body     string
	entry    string
	noDefs   bool
	showMeta bool
}

func newSendCmd(global *globalOptions) *cobra.Command {
	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send [endpoint]",
		Short: "Submit one request without the terminal UI and print the output",
		Long: heredoc.Doc(`
			Fill the form from flags, submit it once, and print what the
			output panel would show: the formatted reply body, or the
			error text when the request could not be made.

			With --entry the form starts from a catalog call; other flags
			then edit it the same way typing in the form would.
		`),
		Example: heredoc.Doc(`
			livereq send Observation/123
			livereq send -X POST -d '{"resourceType":"Patient"}' Patient
			livereq send --catalog calls.yaml --entry "Read observation"
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := global.resolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			httpOpts, err := httpOptionsFor(settings)
			if err != nil {
				return err
			}

			ctrl := liveclient.New(settings.Prefix())
			if opts.entry != "" {
				entries, err := loadCatalog(cmd.Context(), settings)
				if err != nil {
					return err
				}
				entry, err := findEntry(entries, opts.entry)
				if err != nil {
					return err
				}
				ctrl.SetCall(entry.Call)
			}
			if err := opts.apply(cmd, ctrl, args); err != nil {
				return err
			}

			client, shutdown := global.newClient()
			defer shutdown()

			res := ctrl.Send(cmd.Context(), client, httpOpts)
			return writeResult(cmd.OutOrStdout(), res, opts.showMeta)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.method, "method", "X", "", "Request method (GET, POST, PUT, DELETE)")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "Header as 'Name: value' (repeatable)")
	flags.StringVarP(&opts.body, "data", "d", "", "Request body (ignored for GET)")
	flags.StringVar(&opts.entry, "entry", "", "Start from the named catalog entry")
	flags.BoolVar(&opts.noDefs, "no-default-headers", false, "Drop the default Accept and Content-Type rows")
	flags.BoolVarP(&opts.showMeta, "include", "i", false, "Print the status line before the output")
	return cmd
}

// apply edits the form the way the UI would: one field at a time.
func (o *sendOptions) apply(cmd *cobra.Command, ctrl *liveclient.Controller, args []string) error {
	if len(args) == 1 {
		ctrl.UpdateField(form.FieldEndpoint, args[0])
	}
	if cmd.Flags().Changed("method") {
		if !ctrl.UpdateField(form.FieldMethod, o.method) {
			return fmt.Errorf("unsupported method %q", o.method)
		}
	}
	if cmd.Flags().Changed("data") {
		ctrl.UpdateField(form.FieldBody, o.body)
	}
	if o.noDefs {
		for len(ctrl.State().Headers) > 0 {
			ctrl.RemoveHeader(0)
		}
	}

	headers, err := parseHeaderFlags(o.headers)
	if err != nil {
		return err
	}
	for _, h := range headers {
		ctrl.AddHeader()
		idx := len(ctrl.State().Headers) - 1
		ctrl.UpdateHeader(idx, form.HeaderKey, h.Key)
		ctrl.UpdateHeader(idx, form.HeaderValue, h.Value)
	}
	return nil
}

func writeResult(w io.Writer, res liveclient.Result, showMeta bool) error {
	if showMeta && res.Response != nil {
		if _, err := fmt.Fprintf(w, "%s %s (%s)\n\n", res.Response.Proto, res.Response.Status, res.Response.Duration); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, res.Output); err != nil {
		log.Printf("write output: %v", err)
		return err
	}
	if res.Err != nil {
		return res.Err
	}
	return nil
}
