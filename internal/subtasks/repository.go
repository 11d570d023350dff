package subtasks

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("Subtask not found")
	ErrProjectNotFound = errors.New("Project not found")
)

// Repository defines persistence for subtasks addressed through their
// parent project. Every statement joins projects on the owner id, so a
// subtask under someone else's project is unreachable.
type Repository interface {
	Create(ctx context.Context, projectID, userID int64, task string) (int64, error)
	List(ctx context.Context, projectID, userID int64) ([]Subtask, error)
	Get(ctx context.Context, id, projectID, userID int64) (*Subtask, error)
	Update(ctx context.Context, st Subtask, userID int64) error
	Delete(ctx context.Context, id, projectID, userID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// Create inserts only when the target project belongs to the caller; the
// ownership check and the insert are one statement.
func (r *repository) Create(ctx context.Context, projectID, userID int64, task string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO subtasks (project_id, task)
		 SELECT p.id, $2 FROM projects p WHERE p.id = $1 AND p.user_id = $3
		 RETURNING id`,
		projectID, task, userID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrProjectNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) projectOwned(ctx context.Context, projectID, userID int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND user_id = $2)`,
		projectID, userID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProjectNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, projectID, userID int64) ([]Subtask, error) {
	if err := r.projectOwned(ctx, projectID, userID); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, task, completed FROM subtasks
		 WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Subtask, 0)
	for rows.Next() {
		var st Subtask
		if err := rows.Scan(&st.ID, &st.ProjectID, &st.Task, &st.Completed); err != nil {
			return nil, err
		}
		list = append(list, st)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id, projectID, userID int64) (*Subtask, error) {
	var st Subtask
	err := r.pool.QueryRow(ctx,
		`SELECT s.id, s.project_id, s.task, s.completed
		 FROM subtasks s JOIN projects p ON p.id = s.project_id
		 WHERE s.id = $1 AND s.project_id = $2 AND p.user_id = $3`,
		id, projectID, userID,
	).Scan(&st.ID, &st.ProjectID, &st.Task, &st.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *repository) Update(ctx context.Context, st Subtask, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE subtasks SET task = $1, completed = $2
		 FROM projects p
		 WHERE subtasks.id = $3 AND subtasks.project_id = $4
		   AND p.id = subtasks.project_id AND p.user_id = $5`,
		st.Task, st.Completed, st.ID, st.ProjectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, projectID, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM subtasks USING projects p
		 WHERE subtasks.id = $1 AND subtasks.project_id = $2
		   AND p.id = subtasks.project_id AND p.user_id = $3`,
		id, projectID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
