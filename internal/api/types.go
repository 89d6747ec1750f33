package api

import "encoding/json"

// Todo represents a todo item as stored by the server
type Todo struct {
	ID            int     `json:"id"`
	Item          string  `json:"item"`
	Done          bool    `json:"done"`
	ListID        *string `json:"list_id,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	EstimatedTime *string `json:"estimated_time,omitempty"`
	Category      *string `json:"category,omitempty"`
}

// InList reports whether the todo belongs to the named list.
// A nil list ID means the todo lives in the main (default) collection.
func (t Todo) InList(listID string) bool {
	return t.ListID != nil && *t.ListID == listID
}

// InMainList reports whether the todo belongs to the default collection
func (t Todo) InMainList() bool {
	return t.ListID == nil || *t.ListID == ""
}

// TaskDraft is a generated task suggestion before it is materialized.
// Drafts have no server identity; they exist only on the client.
type TaskDraft struct {
	Text          string `json:"text"`
	Priority      string `json:"priority,omitempty"`
	EstimatedTime string `json:"estimated_time,omitempty"`
	Category      string `json:"category,omitempty"`
}

// CreateTodoRequest is the body for creating a todo
type CreateTodoRequest struct {
	Item   string  `json:"item"`
	ListID *string `json:"list_id,omitempty"`
}

// UpdateTodoRequest is the body for updating a todo. Nil fields are
// left untouched by the server.
type UpdateTodoRequest struct {
	Item *string `json:"item,omitempty"`
	Done *bool   `json:"done,omitempty"`
}

// CreateTasksRequest is the body for materializing generated drafts
type CreateTasksRequest struct {
	Tasks  []TaskDraft `json:"tasks"`
	ListID *string     `json:"list_id,omitempty"`
}

// envelope is the standard response wrapper used by every endpoint
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// message returns the best human-readable text carried by the envelope
func (e envelope) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// breakdownResponse is the reply shape of the AI generation endpoints
type breakdownResponse struct {
	Success        bool        `json:"success"`
	SuggestedTasks []TaskDraft `json:"suggested_tasks"`
	Error          string      `json:"error,omitempty"`
	Message        string      `json:"message,omitempty"`
}
