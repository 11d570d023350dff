package projects

import "github.com/taskforge/taskforge/internal/subtasks"

// Project groups subtasks under a single owner. The wire names follow the
// original frontend contract: dateFinish, subtasks[{task, completed}].
type Project struct {
	ID          int64              `json:"id"`
	UserID      int64              `json:"user_id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	DateFinish  *string            `json:"dateFinish"`
	Subtasks    []subtasks.Subtask `json:"subtasks"`
}
