package tasks

import "context"

// Service applies task defaults and delegates to the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func taskFromRequest(req TaskRequest, id, userID int64) Task {
	status := req.Status
	if status == "" {
		status = "pending"
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	return Task{
		ID:          id,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     req.DueDate,
	}
}

// Create inserts a task for the owner, defaulting status and priority.
func (s *Service) Create(ctx context.Context, userID int64, req TaskRequest) (int64, error) {
	return s.repo.Create(ctx, taskFromRequest(req, 0, userID))
}

// List returns all of the owner's tasks.
func (s *Service) List(ctx context.Context, userID int64) ([]Task, error) {
	return s.repo.List(ctx, userID)
}

// Get fetches one task scoped to the owner.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Task, error) {
	return s.repo.Get(ctx, id, userID)
}

// Update replaces the task's full field set, scoped to the owner.
func (s *Service) Update(ctx context.Context, id, userID int64, req TaskRequest) error {
	return s.repo.Update(ctx, taskFromRequest(req, id, userID))
}

// Delete removes the task, scoped to the owner.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}
