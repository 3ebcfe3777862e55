package api

import (
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/types"
)

const (
	pathFolders = "/api/folders"
)

// Folders implements the /api/folders endpoints of the management API.
// Listing requires the "Projects & folders → List folders/projects"
// privilege on the API client role.
type Folders struct {
	api *apiClient
}

func NewFoldersApi(apiToken string, baseUrl string, cfg Config) *Folders {
	return &Folders{
		api: newApiClient(apiToken, baseUrl, cfg),
	}
}

// List returns one page of folders under req.ParentId, or under the Home
// folder when it is nil.
func (c *Folders) List(req types.FoldersRequest) ([]types.Folder, error) {
	params := url.Values{}
	if req.ParentId != nil {
		params.Set("parent_id", fmt.Sprint(*req.ParentId))
	}

	res := []types.Folder{}
	err := c.api.listIndex("folders.list", pathFolders, req.Page, req.PerPage, params, &res)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Create creates a folder. Some deployments answer with the bare new id
// instead of the folder object; that id is returned as Folder.Id.
func (c *Folders) Create(req types.FolderCreateRequest) (*types.Folder, error) {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
	)
	if err != nil {
		return nil, invalid(err)
	}

	var raw any
	err = c.api.do("folders.create", func() *errors.ApiError {
		return c.api.postJson(pathFolders, req, &raw)
	})
	if err != nil {
		return nil, err
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		obj = map[string]any{"id": raw}
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		obj = inner
	}

	var folder types.Folder
	if err := decode(obj, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}
