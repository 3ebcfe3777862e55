package api

import (
	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/parsers"
	"github.com/block/datatables-go/types"
)

const (
	pathUsersMe = "/api/users/me"
)

// Users implements the /api/users endpoints of the management API.
type Users struct {
	api *apiClient
}

func NewUsersApi(apiToken string, baseUrl string, cfg Config) *Users {
	return &Users{
		api: newApiClient(apiToken, baseUrl, cfg),
	}
}

// Me returns the user the API token belongs to.
func (c *Users) Me() (*types.User, error) {
	var raw any
	err := c.api.do("users.me", func() *errors.ApiError {
		return c.api.getJson(pathUsersMe, nil, &raw)
	})
	if err != nil {
		return nil, err
	}

	var user types.User
	if err := decode(parsers.NormalizeObject(raw), &user); err != nil {
		return nil, err
	}
	return &user, nil
}
