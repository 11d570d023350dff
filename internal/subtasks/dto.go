package subtasks

// SubtaskRequest is the body of subtask create and update.
type SubtaskRequest struct {
	Task      string `json:"task" validate:"required"`
	Completed bool   `json:"completed"`
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
