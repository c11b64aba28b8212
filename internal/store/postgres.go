package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const projectColumns = `project_id, title, organization,
	criteria, comparisons, directions, alternatives, assets,
	created_at, updated_at`

func (s *PostgresStore) CreateProject(ctx context.Context, p *Project) error {
	orgJSON, _ := json.Marshal(p.Organization)
	criteriaJSON, _ := json.Marshal(p.Criteria)
	comparisonsJSON, _ := json.Marshal(p.Comparisons)
	directionsJSON, _ := json.Marshal(p.Directions)
	alternativesJSON, _ := json.Marshal(p.Alternatives)
	assetsJSON, _ := json.Marshal(p.Assets)

	return s.pool.QueryRow(ctx, `
		INSERT INTO decision_projects (title, organization,
			criteria, comparisons, directions, alternatives, assets)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING project_id, created_at, updated_at`,
		p.Title, orgJSON,
		criteriaJSON, comparisonsJSON, directionsJSON, alternativesJSON, assetsJSON,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *PostgresStore) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+projectColumns+`
		FROM decision_projects WHERE project_id = $1`, id)

	p, err := scanProject(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) ListProjects(ctx context.Context, filter ProjectFilter) ([]*Project, error) {
	query := `SELECT ` + projectColumns + ` FROM decision_projects WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Industry != "" {
		n++
		query += fmt.Sprintf(" AND organization->>'industry' = $%d", n)
		args = append(args, filter.Industry)
	}

	query += " ORDER BY updated_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *PostgresStore) UpdateProject(ctx context.Context, p *Project) error {
	orgJSON, _ := json.Marshal(p.Organization)
	criteriaJSON, _ := json.Marshal(p.Criteria)
	comparisonsJSON, _ := json.Marshal(p.Comparisons)
	directionsJSON, _ := json.Marshal(p.Directions)
	alternativesJSON, _ := json.Marshal(p.Alternatives)
	assetsJSON, _ := json.Marshal(p.Assets)

	_, err := s.pool.Exec(ctx, `
		UPDATE decision_projects SET
			title = $2, organization = $3,
			criteria = $4, comparisons = $5, directions = $6,
			alternatives = $7, assets = $8,
			updated_at = now()
		WHERE project_id = $1`,
		p.ID, p.Title, orgJSON,
		criteriaJSON, comparisonsJSON, directionsJSON,
		alternativesJSON, assetsJSON,
	)
	return err
}

func (s *PostgresStore) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM decision_projects WHERE project_id = $1`, id)
	return err
}

func (s *PostgresStore) CreateEvaluation(ctx context.Context, e *Evaluation) error {
	inputJSON, _ := json.Marshal(e.Input)
	resultJSON, _ := json.Marshal(e.Result)

	return s.pool.QueryRow(ctx, `
		INSERT INTO decision_evaluations (project_id, kind, input, result, top_closeness)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.ProjectID, e.Kind, inputJSON, resultJSON, e.TopCloseness,
	).Scan(&e.ID, &e.CreatedAt)
}

func (s *PostgresStore) GetEvaluation(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	e := &Evaluation{}
	var inputJSON, resultJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, project_id, kind, input, result, top_closeness, created_at
		FROM decision_evaluations WHERE id = $1`, id,
	).Scan(&e.ID, &e.ProjectID, &e.Kind, &inputJSON, &resultJSON, &e.TopCloseness, &e.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if inputJSON != nil {
		_ = json.Unmarshal(inputJSON, &e.Input)
	}
	if resultJSON != nil {
		_ = json.Unmarshal(resultJSON, &e.Result)
	}
	return e, nil
}

func (s *PostgresStore) ListEvaluations(ctx context.Context, projectID uuid.UUID) ([]*Evaluation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, project_id, kind, input, result, top_closeness, created_at
		FROM decision_evaluations WHERE project_id = $1
		ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluations []*Evaluation
	for rows.Next() {
		e := &Evaluation{}
		var inputJSON, resultJSON []byte
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Kind, &inputJSON, &resultJSON, &e.TopCloseness, &e.CreatedAt); err != nil {
			return nil, err
		}
		if inputJSON != nil {
			_ = json.Unmarshal(inputJSON, &e.Input)
		}
		if resultJSON != nil {
			_ = json.Unmarshal(resultJSON, &e.Result)
		}
		evaluations = append(evaluations, e)
	}
	return evaluations, rows.Err()
}

func (s *PostgresStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM decision_projects),
			COUNT(*),
			COALESCE(AVG(top_closeness) FILTER (WHERE top_closeness IS NOT NULL), 0),
			COALESCE(MAX(top_closeness) FILTER (WHERE top_closeness IS NOT NULL), 0)
		FROM decision_evaluations`,
	).Scan(&stats.ProjectCount, &stats.EvaluationCount, &stats.AvgTopCloseness, &stats.MaxTopCloseness)
	return stats, err
}

func scanProject(row pgx.Row) (*Project, error) {
	p := &Project{}
	var orgJSON, criteriaJSON, comparisonsJSON, directionsJSON, alternativesJSON, assetsJSON []byte
	if err := row.Scan(
		&p.ID, &p.Title, &orgJSON,
		&criteriaJSON, &comparisonsJSON, &directionsJSON, &alternativesJSON, &assetsJSON,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if orgJSON != nil {
		_ = json.Unmarshal(orgJSON, &p.Organization)
	}
	if criteriaJSON != nil {
		_ = json.Unmarshal(criteriaJSON, &p.Criteria)
	}
	if comparisonsJSON != nil {
		_ = json.Unmarshal(comparisonsJSON, &p.Comparisons)
	}
	if directionsJSON != nil {
		_ = json.Unmarshal(directionsJSON, &p.Directions)
	}
	if alternativesJSON != nil {
		_ = json.Unmarshal(alternativesJSON, &p.Alternatives)
	}
	if assetsJSON != nil {
		_ = json.Unmarshal(assetsJSON, &p.Assets)
	}
	return p, nil
}
