package types

type User struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type ConnectionTest struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	AccountName      string `json:"account_name"`
	SampleTableCount int    `json:"sample_table_count"`
}
