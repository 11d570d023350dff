package subtasks

// Subtask is a checklist line owned by exactly one project. It never exists
// outside the context of its parent.
type Subtask struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}
