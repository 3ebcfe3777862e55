package datatables_go

import (
	"fmt"
	"net/http"

	"github.com/block/datatables-go/api"
	datatables_errors "github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/retry"
	"github.com/block/datatables-go/types"
)

type Client struct {
	httpClient *http.Client

	users    *api.Users
	tables   *api.Tables
	records  *api.Records
	folders  *api.Folders
	projects *api.Projects
}

func NewClient(apiToken string, opts ...ConfigOption) *Client {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	httpClient := &http.Client{}
	httpClient.Transport = cfg.transport
	httpClient.Timeout = cfg.timeout

	r := retry.NewBackoffRetry(
		retry.WithConfig(cfg.retry),
		retry.WithLogger(cfg.logger),
		retry.WithMetrics(cfg.metrics),
	)

	apiCfg := api.Config{
		HttpClient: httpClient,
		Logger:     cfg.logger,
		Limiter:    cfg.limiter,
		Retry:      r,
		Metrics:    cfg.metrics,
	}
	if cfg.correlationId != "" {
		cid := cfg.correlationId
		apiCfg.CorrelationId = func() string { return cid }
	}

	return &Client{
		httpClient: httpClient,
		users:      api.NewUsersApi(apiToken, cfg.baseUrl, apiCfg),
		tables:     api.NewTablesApi(apiToken, cfg.baseUrl, apiCfg),
		records:    api.NewRecordsApi(apiToken, cfg.recordsUrl, apiCfg),
		folders:    api.NewFoldersApi(apiToken, cfg.baseUrl, apiCfg),
		projects:   api.NewProjectsApi(apiToken, cfg.baseUrl, apiCfg),
	}
}

func (c *Client) Users() *api.Users {
	return c.users
}

func (c *Client) Tables() *api.Tables {
	return c.tables
}

func (c *Client) Records() *api.Records {
	return c.records
}

func (c *Client) Folders() *api.Folders {
	return c.folders
}

func (c *Client) Projects() *api.Projects {
	return c.projects
}

// TestConnection verifies the token against the management API.
// A token whose role cannot list data tables still counts as connected;
// SampleTableCount is then 0.
func (c *Client) TestConnection() (*types.ConnectionTest, error) {
	me, err := c.users.Me()
	if err != nil {
		return nil, fmt.Errorf("test connection failed: %w", err)
	}

	tables, err := c.tables.List(types.TablesRequest{Page: 1, PerPage: 1})
	if err != nil {
		if datatables_errors.StatusCode(err) != http.StatusForbidden {
			return nil, fmt.Errorf("test connection failed: %w", err)
		}
		tables = nil
	}

	accountName := me.Name
	if accountName == "" {
		accountName = fmt.Sprint(me.Id)
	}
	return &types.ConnectionTest{
		Success:          true,
		Message:          "Connected",
		AccountName:      accountName,
		SampleTableCount: len(tables),
	}, nil
}
