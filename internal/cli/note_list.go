package cli

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/mithrel/slipnote/internal/present"
	"github.com/mithrel/slipnote/internal/present/format"
	"github.com/mithrel/slipnote/internal/present/tui"
	"github.com/mithrel/slipnote/internal/util"
	"github.com/mithrel/slipnote/internal/wire"
	"github.com/mithrel/slipnote/pkg/api"
)

// FilterOpts are the list selection flags shared by list and delete.
type FilterOpts struct {
	Search string
	Sort   string
	Order  string
	Since  string
	Until  string
	Limit  int
}

func addFilterFlags(cmd *cobra.Command, f *FilterOpts) {
	cmd.Flags().StringVarP(&f.Search, "search", "s", "", "fuzzy search over title and body")
	cmd.Flags().StringVar(&f.Sort, "sort", "", "sort field: lastModified|title|size (default from config)")
	cmd.Flags().StringVar(&f.Order, "order", "", "sort order: asc|desc (default from config)")
	cmd.Flags().StringVar(&f.Since, "since", "", "only notes modified since (e.g. 2h, 3d, 2024-05-01)")
	cmd.Flags().StringVar(&f.Until, "until", "", "only notes modified until")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum number of notes (0 for all)")
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(api.SortLastModified), string(api.SortTitle), string(api.SortSize)}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("order", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{string(api.OrderAsc), string(api.OrderDesc)}, cobra.ShellCompDirectiveNoFileComp
	})
}

// buildQuery turns filter flags into a ListQuery, falling back to the
// list.sort_* options.
func buildQuery(app *wire.App, f FilterOpts, now time.Time) (api.ListQuery, error) {
	sortName := f.Sort
	if sortName == "" {
		sortName = app.Cfg.GetString("list.sort_field")
	}
	field, ok := api.ParseSortField(sortName)
	if !ok {
		return api.ListQuery{}, errors.Newf("invalid --sort: %s", sortName)
	}
	orderName := f.Order
	if orderName == "" {
		orderName = app.Cfg.GetString("list.sort_order")
	}
	order, ok := api.ParseSortOrder(orderName)
	if !ok {
		return api.ListQuery{}, errors.Newf("invalid --order: %s", orderName)
	}
	since, until, err := util.ParseTimeRange(f.Since, f.Until, now)
	if err != nil {
		return api.ListQuery{}, err
	}
	if f.Limit < 0 {
		return api.ListQuery{}, errors.New("--limit must not be negative")
	}
	return api.ListQuery{
		Search: f.Search,
		Sort:   field,
		Order:  order,
		Since:  since,
		Until:  until,
		Limit:  f.Limit,
	}, nil
}

func newNoteListCmd() *cobra.Command {
	var filters FilterOpts
	var outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			q, err := buildQuery(app, filters, time.Now())
			if err != nil {
				return err
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModePretty || mode == present.ModeReceipt {
				return errors.Newf("invalid --output: %s", outputMode)
			}
			notes, err := app.Store.Notes.ListNotes(cmd.Context(), q)
			if err != nil {
				return err
			}
			width := app.PaperWidth(cmd.Context(), 0)
			opts := present.Options{
				Mode:       mode,
				JSONIndent: false, // pretty-print via external tools like jq
				Headers:    !noHeaders,
				PaperWidth: width,
				Actions:    browserActions(app, width),
			}
			return renderNotes(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), notes, opts)
		},
	}
	addFilterFlags(cmd, &filters)
	cmd.Flags().StringVar(&outputMode, "output", "plain", "output mode: plain|json|ndjson|tui")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "json", "ndjson", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers (plain/tui)")
	return cmd
}

// browserActions connects the interactive list to the store and printer.
func browserActions(app *wire.App, width int) tui.Actions {
	return tui.Actions{
		Receipt: func(n api.Note) (string, error) {
			return format.Receipt(n.Body, width)
		},
		Print: func(ctx context.Context, n api.Note) error {
			_, _, err := printNote(ctx, app, n, printRequest{Width: width})
			return err
		},
		Delete: func(ctx context.Context, id string) error {
			return app.Store.Notes.DeleteNote(ctx, id)
		},
	}
}
