package api

import (
	"github.com/block/datatables-go/types"
)

const (
	pathProjects = "/api/projects"
)

// Projects implements the /api/projects endpoints of the management API.
type Projects struct {
	api *apiClient
}

func NewProjectsApi(apiToken string, baseUrl string, cfg Config) *Projects {
	return &Projects{
		api: newApiClient(apiToken, baseUrl, cfg),
	}
}

func (c *Projects) List(req types.ProjectsRequest) ([]types.Project, error) {
	res := []types.Project{}
	err := c.api.listIndex("projects.list", pathProjects, req.Page, req.PerPage, nil, &res)
	if err != nil {
		return nil, err
	}
	return res, nil
}
