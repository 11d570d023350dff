package tasks

// Task is a standalone to-do item owned by exactly one user. Dates travel
// as "YYYY-MM-DD" strings on the wire and in the DATE column.
type Task struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
}
