package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/taskforge/internal/subtasks"
)

var ErrNotFound = errors.New("Project not found")

// Repository defines owner-scoped persistence for projects and their
// nested subtasks. Subtask rows are only ever written through statements
// that pin the parent project to the owner.
type Repository interface {
	Create(ctx context.Context, p Project, subs []subtasks.Subtask) (int64, error)
	List(ctx context.Context, userID int64) ([]Project, error)
	Get(ctx context.Context, id, userID int64) (*Project, error)
	Update(ctx context.Context, p Project, subs []subtasks.Subtask) error
	Delete(ctx context.Context, id, userID int64) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const projectColumns = `id, user_id, title, description, date_finish::text`

func scanProject(row pgx.Row) (*Project, error) {
	var p Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.DateFinish); err != nil {
		return nil, err
	}
	p.Subtasks = make([]subtasks.Subtask, 0)
	return &p, nil
}

// insertSubtasks writes the batch in a single multi-row statement.
func (r *repository) insertSubtasks(ctx context.Context, projectID int64, subs []subtasks.Subtask) error {
	if len(subs) == 0 {
		return nil
	}
	values := make([]string, 0, len(subs))
	args := make([]any, 0, len(subs)*3)
	for i, st := range subs {
		values = append(values, fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3))
		args = append(args, projectID, st.Task, st.Completed)
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO subtasks (project_id, task, completed) VALUES `+strings.Join(values, ", "),
		args...)
	return err
}

func (r *repository) Create(ctx context.Context, p Project, subs []subtasks.Subtask) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO projects (user_id, title, description, date_finish)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		p.UserID, p.Title, p.Description, p.DateFinish,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	if err := r.insertSubtasks(ctx, id, subs); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) List(ctx context.Context, userID int64) ([]Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Project, 0)
	ids := make([]int64, 0)
	index := make(map[int64]int)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(list)
		ids = append(ids, p.ID)
		list = append(list, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	// One query for the whole page of projects; never a query per project.
	subs, err := r.subtasksFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, st := range subs {
		i := index[st.ProjectID]
		list[i].Subtasks = append(list[i].Subtasks, st)
	}
	return list, nil
}

func (r *repository) subtasksFor(ctx context.Context, projectIDs []int64) ([]subtasks.Subtask, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, task, completed FROM subtasks
		 WHERE project_id = ANY($1) ORDER BY id`, projectIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]subtasks.Subtask, 0)
	for rows.Next() {
		var st subtasks.Subtask
		if err := rows.Scan(&st.ID, &st.ProjectID, &st.Task, &st.Completed); err != nil {
			return nil, err
		}
		list = append(list, st)
	}
	return list, rows.Err()
}

func (r *repository) Get(ctx context.Context, id, userID int64) (*Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	subs, err := r.subtasksFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	p.Subtasks = subs
	return p, nil
}

// Update replaces the project row and then its entire subtask set: the old
// rows are deleted and the submitted ones reinserted, never merged.
func (r *repository) Update(ctx context.Context, p Project, subs []subtasks.Subtask) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET title = $1, description = $2, date_finish = $3
		 WHERE id = $4 AND user_id = $5`,
		p.Title, p.Description, p.DateFinish, p.ID, p.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM subtasks WHERE project_id = $1`, p.ID); err != nil {
		return err
	}
	return r.insertSubtasks(ctx, p.ID, subs)
}

// Delete removes the children first, then the parent: a manual cascade,
// since the schema declares no ON DELETE CASCADE. The subtask delete joins
// projects so it only fires for the owner's own project.
func (r *repository) Delete(ctx context.Context, id, userID int64) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM subtasks USING projects
		 WHERE subtasks.project_id = projects.id AND projects.id = $1 AND projects.user_id = $2`,
		id, userID); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
