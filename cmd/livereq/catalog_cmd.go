package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unkn0wn-root/livereq/internal/catalog"
	"github.com/unkn0wn-root/livereq/internal/errdef"
	"github.com/unkn0wn-root/livereq/internal/form"
)

func newCatalogCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [query]",
		Short: "List try-it entries from the configured catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := global.resolveSettings(cmd.Flags())
			if err != nil {
				return err
			}
			if strings.TrimSpace(settings.Catalog) == "" {
				return errdef.New(errdef.CodeConfig, "no catalog configured (use --catalog)")
			}
			entries, err := loadCatalog(cmd.Context(), settings)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				entries = catalog.Filter(entries, args[0])
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				method := strings.ToUpper(strings.TrimSpace(e.Method))
				if method == "" {
					method = string(form.MethodGet)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, method, e.Endpoint)
			}
			return tw.Flush()
		},
	}
}
