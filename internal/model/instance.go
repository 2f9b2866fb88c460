package model

import "time"

// Status is the fetch status of a configured model.
type Status string

const (
	// StatusPending indicates that the artifact has not been fetched yet.
	StatusPending Status = "pending"

	// StatusReady indicates that the artifact path is known.
	StatusReady Status = "ready"

	// StatusFailed indicates that fetching the artifact failed.
	StatusFailed Status = "failed"
)

// Instance tracks one configured model and its artifact.
type Instance struct {
	Model     Model      `json:"-"`
	FetchedAt *time.Time `json:"fetched_at,omitempty"`
	Key       string     `json:"key"`
	Family    string     `json:"family"`
	ID        string     `json:"id"`
	Task      string     `json:"task"`
	Path      string     `json:"path,omitempty"`
	Status    Status     `json:"status"`
	Error     string     `json:"error,omitempty"`
	Decoder   bool       `json:"decoder"`
}

// NewInstance creates a pending instance for m configured under key.
func NewInstance(key string, m Model) *Instance {
	return &Instance{
		Model:   m,
		Key:     key,
		Family:  m.Name(),
		ID:      m.ID(),
		Task:    m.Task(),
		Decoder: m.IsDecoder(),
		Status:  StatusPending,
	}
}

// SetReady records the artifact path.
func (i *Instance) SetReady(path string) {
	now := time.Now()
	i.Path = path
	i.Status = StatusReady
	i.FetchedAt = &now
	i.Error = ""
}

// SetError records a fetch failure.
func (i *Instance) SetError(err error) {
	i.Status = StatusFailed
	i.Error = err.Error()
}
