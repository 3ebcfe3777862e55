package api

import (
	"net/http"
	"testing"

	"github.com/block/datatables-go/errors"
	"github.com/block/datatables-go/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolders_List(t *testing.T) {
	tr := newTestTransport(testResponse{
		code: 200,
		body: []byte(`[{"id":1,"name":"Home","is_project":true},{"id":2,"name":"Sub","parent_id":1}]`),
	})
	api := NewFoldersApi(testApiToken, testBaseUrl, testConfig(tr))

	parent := int64(1)
	res, err := api.List(types.FoldersRequest{ParentId: &parent, PerPage: 50})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.True(t, res[0].IsProject)
	require.NotNil(t, res[1].ParentId)
	assert.Equal(t, int64(1), *res[1].ParentId)
	assert.Equal(t, testBaseUrl+"/api/folders?page=1&parent_id=1&per_page=50", tr.Request(0).url)
}

func TestFolders_List_forbidden(t *testing.T) {
	tr := newTestTransport(testResponse{code: 403, body: []byte(`{}`)})
	api := NewFoldersApi(testApiToken, testBaseUrl, testConfig(tr))

	res, err := api.List(types.FoldersRequest{})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "List folders/projects")
	assert.Contains(t, err.Error(), testCid)
}

func TestFolders_Create(t *testing.T) {
	testCases := []struct {
		name     string
		resBody  string
		expectId int64
	}{
		{name: "object reply", resBody: `{"id":5,"name":"New"}`, expectId: 5},
		{name: "data envelope", resBody: `{"data":{"id":6,"name":"New"}}`, expectId: 6},
		{name: "bare id", resBody: `7`, expectId: 7},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTransport(testResponse{code: 200, body: []byte(tt.resBody)})
			api := NewFoldersApi(testApiToken, testBaseUrl, testConfig(tr))

			parent := int64(1)
			folder, err := api.Create(types.FolderCreateRequest{Name: "New", ParentId: &parent})
			require.NoError(t, err)
			assert.Equal(t, tt.expectId, folder.Id)

			req := tr.Request(0)
			assert.Equal(t, http.MethodPost, req.method)
			assert.JSONEq(t, `{"name":"New","parent_id":1}`, req.body)
		})
	}
}

func TestFolders_Create_requires_name(t *testing.T) {
	tr := newTestTransport(testResponse{code: 200})
	api := NewFoldersApi(testApiToken, testBaseUrl, testConfig(tr))

	_, err := api.Create(types.FolderCreateRequest{})
	assert.True(t, errors.IsValidation(err))
	assert.Equal(t, 0, tr.Count())
}

func TestProjects_List(t *testing.T) {
	tr := newTestTransport(testResponse{
		code: 200,
		body: []byte(`{"items":[{"id":3,"name":"Ops","folder_id":9}]}`),
	})
	api := NewProjectsApi(testApiToken, testBaseUrl, testConfig(tr))

	res, err := api.List(types.ProjectsRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Equal(t, []types.Project{{Id: 3, Name: "Ops", FolderId: 9}}, res)
	assert.Equal(t, testBaseUrl+"/api/projects?page=1&per_page=10", tr.Request(0).url)
}

func TestUsers_Me(t *testing.T) {
	tr := newTestTransport(testResponse{code: 200, body: []byte(`{"id":"42","name":"Ada","email":"ada@example.com"}`)})
	api := NewUsersApi(testApiToken, testBaseUrl, testConfig(tr))

	user, err := api.Me()
	require.NoError(t, err)
	assert.Equal(t, &types.User{Id: 42, Name: "Ada", Email: "ada@example.com"}, user)
	assert.Equal(t, testBaseUrl+"/api/users/me", tr.Request(0).url)
}

func TestUsers_Me_unauthorized(t *testing.T) {
	tr := newTestTransport(testResponse{code: 401, body: []byte(`{"message":"bad token"}`)})
	api := NewUsersApi(testApiToken, testBaseUrl, testConfig(tr))

	user, err := api.Me()
	assert.Nil(t, user)
	assert.Equal(t, 401, errors.StatusCode(err))
	assert.Equal(t, 1, tr.Count())
}
