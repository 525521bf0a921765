package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Alp4ka/gotable"
	"github.com/Alp4ka/gotable/internal/config"
	"github.com/Alp4ka/gotable/internal/ledger"
)

type listOptions struct {
	user       string
	search     string
	filters    []string
	sorts      []string
	page       int
	pageSize   int
	pageToken  string
	serverSide bool
	output     string
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the transactions of a user page by page",
		Long: `List the transactions of a user.

The free-text --search matches description and category case-insensitively.
Each --filter keeps the transactions whose field equals one of the given
values; filters on different fields must all match. Fields: id, userId,
type, amount, category, description, date and, in memory only, period.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "owner of the transactions (required)")
	cmd.Flags().StringVar(&opts.search, "search", "", "free-text query over description and category")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "field filter 'key=value1,value2' (repeatable)")
	cmd.Flags().StringArrayVar(&opts.sorts, "sort", nil, "sort order 'field asc|desc' (repeatable)")
	cmd.Flags().IntVar(&opts.page, "page", 0, "zero-based page index")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "transactions per page (0 uses LEDGER_DEFAULT_PAGE_SIZE)")
	cmd.Flags().StringVar(&opts.pageToken, "page-token", "", "next page token of a previous listing, overrides --page")
	cmd.Flags().BoolVar(&opts.serverSide, "server-side", false, "filter, sort and paginate in the database")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (a *app) runList(cmd *cobra.Command, opts *listOptions) error {
	if err := validateOutput(opts.output); err != nil {
		return err
	}

	state, err := buildFilterState(opts.search, opts.filters)
	if err != nil {
		return err
	}

	requested, err := requestedPage(opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	var page gotable.Page[ledger.Transaction]
	if opts.serverSide {
		page, err = a.serverPage(ctx, state, opts)
	} else {
		var txs []ledger.Transaction
		if txs, err = a.repo.ListByUser(ctx, opts.user); err != nil {
			return err
		}
		page, err = memoryPage(txs, state, opts, a.cfg)
	}
	if err != nil {
		return err
	}

	if page.PageIndex != requested {
		zerolog.Ctx(ctx).Warn().
			Int("requested", requested).
			Int("total_pages", page.TotalPages).
			Msg("page out of range, showing the first page")
	}

	return renderTransactions(cmd.OutOrStdout(), page, opts.output, a.cfg.Currency, a.cfg.Locale)
}

// memoryPage filters, sorts and paginates the transactions in memory.
func memoryPage(
	txs []ledger.Transaction,
	state gotable.FilterState,
	opts *listOptions,
	cfg *config.Config,
) (gotable.Page[ledger.Transaction], error) {
	table, err := gotable.NewTable(txs, ledger.Getters(), gotable.TableConfig{
		SearchFields:    ledger.SearchFields,
		PageSize:        opts.pageSize,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	})
	if err != nil {
		return gotable.Page[ledger.Transaction]{}, err
	}

	table.SetFilterState(state)

	if len(opts.sorts) > 0 {
		orderings, err := gotable.ParseSort(opts.sorts, fieldColumns())
		if err != nil {
			return gotable.Page[ledger.Transaction]{}, fmt.Errorf("invalid sort: %w", err)
		}
		if err = table.SetSort(orderings); err != nil {
			return gotable.Page[ledger.Transaction]{}, fmt.Errorf("invalid sort: %w", err)
		}
	}

	if opts.pageToken != "" {
		if err = table.Restore(gotable.RawPager{PageToken: opts.pageToken}); err != nil {
			return gotable.Page[ledger.Transaction]{}, err
		}
	} else {
		table.GoToPage(opts.page)
	}

	return table.Page(), nil
}

// serverPage runs the same listing as a database query.
func (a *app) serverPage(
	ctx context.Context,
	state gotable.FilterState,
	opts *listOptions,
) (gotable.Page[ledger.Transaction], error) {
	pageSize, err := resolvePageSize(opts.pageSize, a.cfg.DefaultPageSize, a.cfg.MaxPageSize)
	if err != nil {
		return gotable.Page[ledger.Transaction]{}, err
	}

	orderings, err := gotable.ParseSort(opts.sorts, ledger.Columns)
	if err != nil {
		return gotable.Page[ledger.Transaction]{}, fmt.Errorf("invalid sort: %w", err)
	}

	pageIndex, err := requestedPage(opts)
	if err != nil {
		return gotable.Page[ledger.Transaction]{}, err
	}

	q := gotable.PageQuery{
		State:       state,
		Sort:        orderings,
		PageIndex:   pageIndex,
		PageSize:    pageSize,
		MaxPageSize: a.cfg.MaxPageSize,
	}
	page, err := a.repo.Page(ctx, opts.user, q)
	if err != nil || page.PageIndex == 0 || page.PageIndex < page.TotalPages {
		return page, err
	}

	// Out of range: fall back to the first page like the in-memory listing.
	q.PageIndex = 0

	return a.repo.Page(ctx, opts.user, q)
}

// requestedPage returns the page index asked for by --page-token or, without
// a token, by --page.
func requestedPage(opts *listOptions) (int, error) {
	if opts.pageToken == "" {
		return opts.page, nil
	}

	token, err := gotable.DecodePageToken(opts.pageToken)
	if err != nil {
		return 0, err
	}

	return token.GetIndex(), nil
}
