package entity

// DBInfo is the result of a store round-trip check.
type DBInfo struct {
	CurrentUser     string `json:"current_user"`
	CurrentDatabase string `json:"current_database"`
	Now             string `json:"now"`
}
