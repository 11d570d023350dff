package subtasks

import "context"

// Service delegates subtask operations to the repository. Ownership is
// enforced one layer down, in the queries themselves.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, projectID, userID int64, task string) (int64, error) {
	return s.repo.Create(ctx, projectID, userID, task)
}

func (s *Service) List(ctx context.Context, projectID, userID int64) ([]Subtask, error) {
	return s.repo.List(ctx, projectID, userID)
}

func (s *Service) Get(ctx context.Context, id, projectID, userID int64) (*Subtask, error) {
	return s.repo.Get(ctx, id, projectID, userID)
}

func (s *Service) Update(ctx context.Context, id, projectID, userID int64, req SubtaskRequest) error {
	return s.repo.Update(ctx, Subtask{ID: id, ProjectID: projectID, Task: req.Task, Completed: req.Completed}, userID)
}

func (s *Service) Delete(ctx context.Context, id, projectID, userID int64) error {
	return s.repo.Delete(ctx, id, projectID, userID)
}
