package types

type Folder struct {
	Id        int64  `json:"id"`
	Name      string `json:"name"`
	ParentId  *int64 `json:"parent_id,omitempty"`
	IsProject bool   `json:"is_project"`
	ProjectId *int64 `json:"project_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type FoldersRequest struct {
	Page    int
	PerPage int
	// ParentId defaults to the Home folder when nil.
	ParentId *int64
}

type FolderCreateRequest struct {
	Name     string `json:"name"`
	ParentId *int64 `json:"parent_id,omitempty"`
}

type Project struct {
	Id          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	FolderId    int64  `json:"folder_id,omitempty"`
}

type ProjectsRequest struct {
	Page    int
	PerPage int
}
