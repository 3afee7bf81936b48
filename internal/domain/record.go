package domain

// Record is the plain form of a Task used in snapshots.
type Record struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Complete bool   `json:"complete" yaml:"complete"`
}
