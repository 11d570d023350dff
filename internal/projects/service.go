package projects

import (
	"context"

	"github.com/taskforge/taskforge/internal/subtasks"
)

// Service maps project requests onto the repository.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func projectFromRequest(req ProjectRequest, id, userID int64) Project {
	return Project{
		ID:          id,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DateFinish:  req.DateFinish,
	}
}

// Create inserts the project and its submitted subtasks. New subtasks
// always start out not completed.
func (s *Service) Create(ctx context.Context, userID int64, req ProjectRequest) (int64, error) {
	subs := make([]subtasks.Subtask, 0, len(req.Subtasks))
	for _, st := range req.Subtasks {
		subs = append(subs, subtasks.Subtask{Task: st.Task, Completed: false})
	}
	return s.repo.Create(ctx, projectFromRequest(req, 0, userID), subs)
}

// List returns the owner's projects with their subtasks attached.
func (s *Service) List(ctx context.Context, userID int64) ([]Project, error) {
	return s.repo.List(ctx, userID)
}

// Get fetches one project with its subtasks, scoped to the owner.
func (s *Service) Get(ctx context.Context, id, userID int64) (*Project, error) {
	return s.repo.Get(ctx, id, userID)
}

// Update replaces the project fields and swaps in the submitted subtask
// set, honoring the completed flags the client sent.
func (s *Service) Update(ctx context.Context, id, userID int64, req ProjectRequest) error {
	subs := make([]subtasks.Subtask, 0, len(req.Subtasks))
	for _, st := range req.Subtasks {
		subs = append(subs, subtasks.Subtask{Task: st.Task, Completed: st.Completed})
	}
	return s.repo.Update(ctx, projectFromRequest(req, id, userID), subs)
}

// Delete removes the project and its subtasks, scoped to the owner.
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	return s.repo.Delete(ctx, id, userID)
}
