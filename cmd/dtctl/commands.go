package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	datatables_go "github.com/block/datatables-go"
	"github.com/block/datatables-go/filter"
	"github.com/block/datatables-go/types"
)

// withClient wraps a command body with client construction and output.
func withClient(v *viper.Viper, run func(c *datatables_go.Client, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		client, done, err := newClient(v)
		if err != nil {
			return err
		}
		defer done()

		res, err := run(client, args)
		if err != nil {
			return err
		}
		return printJson(cmd.OutOrStdout(), res)
	}
}

func printJson(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func newTestCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Verify the API token and region",
		Args:  cobra.NoArgs,
		RunE: withClient(v, func(c *datatables_go.Client, _ []string) (any, error) {
			return c.TestConnection()
		}),
	}
}

func newTablesCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Work with data tables",
	}

	var page, perPage int
	list := &cobra.Command{
		Use:   "list",
		Short: "List data tables",
		Args:  cobra.NoArgs,
		RunE: withClient(v, func(c *datatables_go.Client, _ []string) (any, error) {
			return c.Tables().List(types.TablesRequest{Page: page, PerPage: perPage})
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&perPage, "per-page", 100, "tables per page (max 100)")

	var pageSize int
	rows := &cobra.Command{
		Use:   "rows <table-id>",
		Short: "Fetch every row of a table",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(v, func(c *datatables_go.Client, args []string) (any, error) {
			return c.Tables().Rows(args[0], pageSize)
		}),
	}
	rows.Flags().IntVar(&pageSize, "page-size", 100, "rows per request")

	cmd.AddCommand(list, rows)
	return cmd
}

func newFoldersCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folders",
		Short: "Work with folders",
	}

	var page, perPage int
	var parentId int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List folders",
		Args:  cobra.NoArgs,
		RunE: withClient(v, func(c *datatables_go.Client, _ []string) (any, error) {
			req := types.FoldersRequest{Page: page, PerPage: perPage}
			if parentId > 0 {
				req.ParentId = &parentId
			}
			return c.Folders().List(req)
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&perPage, "per-page", 100, "folders per page (max 100)")
	list.Flags().Int64Var(&parentId, "parent-id", 0, "parent folder; Home when unset")

	cmd.AddCommand(list)
	return cmd
}

func newProjectsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Work with projects",
	}

	var page, perPage int
	list := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: withClient(v, func(c *datatables_go.Client, _ []string) (any, error) {
			return c.Projects().List(types.ProjectsRequest{Page: page, PerPage: perPage})
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&perPage, "per-page", 100, "projects per page (max 100)")

	cmd.AddCommand(list)
	return cmd
}

func newRecordsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Query and mutate records",
	}

	var (
		selectCols    []string
		where         string
		orderBy       string
		desc          bool
		limit         int
		continuation  string
		timezoneShift int
	)
	query := &cobra.Command{
		Use:   "query <table-id>",
		Short: "Query records",
		Long: `Query records of a table. --where takes a filter tree as JSON:

  {"operator":"and","conditions":[{"column":"age","operator":"gt","value":30}]}

Operators: eq, ne, gt, lt, gte, lte, in, starts_with.`,
		Args: cobra.ExactArgs(1),
		RunE: withClient(v, func(c *datatables_go.Client, args []string) (any, error) {
			req := types.QueryRequest{
				TableId: args[0],
				Select:  selectCols,
				Limit:   &limit,
			}
			if where != "" {
				var tree filter.Tree
				if err := json.Unmarshal([]byte(where), &tree); err != nil {
					return nil, fmt.Errorf("invalid --where: %w", err)
				}
				req.Filters = &tree
			}
			if orderBy != "" {
				req.Order = &types.QueryOrder{Column: orderBy, Order: "asc"}
				if desc {
					req.Order.Order = "desc"
				}
			}
			if continuation != "" {
				req.ContinuationToken = &continuation
			}
			if timezoneShift != 0 {
				req.TimezoneOffsetSecs = &timezoneShift
			}
			return c.Records().Query(req)
		}),
	}
	query.Flags().StringSliceVar(&selectCols, "select", nil, "columns to return")
	query.Flags().StringVar(&where, "where", "", "filter tree as JSON")
	query.Flags().StringVar(&orderBy, "order-by", "", "sort column")
	query.Flags().BoolVar(&desc, "desc", false, "sort descending")
	query.Flags().IntVar(&limit, "limit", 100, "records per page")
	query.Flags().StringVar(&continuation, "continuation-token", "", "token of the previous page")
	query.Flags().IntVar(&timezoneShift, "timezone-offset-secs", 0, "offset used when comparing date_time to date")

	batchDelete := &cobra.Command{
		Use:   "batch-delete <table-id> <record-id>...",
		Short: "Delete records one by one, reporting per-record failures",
		Args:  cobra.MinimumNArgs(2),
		RunE: withClient(v, func(c *datatables_go.Client, args []string) (any, error) {
			return c.Records().BatchDelete(args[0], args[1:])
		}),
	}

	cmd.AddCommand(query, batchDelete)
	return cmd
}
