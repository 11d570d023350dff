package projects

// SubtaskInput is a nested subtask submitted with a project create/update.
type SubtaskInput struct {
	Task      string `json:"task" validate:"required"`
	Completed bool   `json:"completed"`
}

// ProjectRequest is the body of both create and update. Update replaces the
// project's entire subtask set with the submitted one.
type ProjectRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description *string        `json:"description"`
	DateFinish  *string        `json:"dateFinish" validate:"omitempty,datetime=2006-01-02"`
	Subtasks    []SubtaskInput `json:"subtasks" validate:"omitempty,dive"`
}

type CreateResponse struct {
	InsertedID int64 `json:"insertedId"`
}

type UpdateResponse struct {
	Updated bool `json:"updated"`
}

type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
