package repository

import (
	"context"
	"fmt"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DisciplineRepository struct {
	pool *pgxpool.Pool
}

func NewDisciplineRepository(pool *pgxpool.Pool) *DisciplineRepository {
	return &DisciplineRepository{pool: pool}
}

// Create inserts a new discipline, active by default.
func (r *DisciplineRepository) Create(ctx context.Context, d *model.Discipline) error {
	query := `
		INSERT INTO disciplinas (nombre, descripcion)
		VALUES ($1, $2)
		RETURNING id, activa, created_at
	`

	err := r.pool.QueryRow(ctx, query, d.Name, d.Description).
		Scan(&d.ID, &d.Active, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create discipline: %w", err)
	}

	return nil
}

// GetByID returns nil when the discipline does not exist.
func (r *DisciplineRepository) GetByID(ctx context.Context, id int64) (*model.Discipline, error) {
	query := `
		SELECT id, nombre, descripcion, activa, created_at
		FROM disciplinas
		WHERE id = $1
	`

	var d model.Discipline
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&d.ID, &d.Name, &d.Description, &d.Active, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get discipline by id: %w", err)
	}

	return &d, nil
}

// GetAll returns every discipline, newest first, for the admin listing.
func (r *DisciplineRepository) GetAll(ctx context.Context) ([]*model.Discipline, error) {
	query := `
		SELECT id, nombre, descripcion, activa, created_at
		FROM disciplinas
		ORDER BY id DESC
	`

	return r.queryDisciplines(ctx, query)
}

// GetActive returns the disciplines visible to visitors.
func (r *DisciplineRepository) GetActive(ctx context.Context) ([]*model.Discipline, error) {
	query := `
		SELECT id, nombre, descripcion, activa, created_at
		FROM disciplinas
		WHERE activa = TRUE
		ORDER BY nombre
	`

	return r.queryDisciplines(ctx, query)
}

// ToggleActive flips the visitor-visibility flag.
func (r *DisciplineRepository) ToggleActive(ctx context.Context, id int64) error {
	query := `
		UPDATE disciplinas
		SET activa = NOT activa
		WHERE id = $1
	`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("toggle discipline: %w", err)
	}

	return nil
}

// Delete removes a discipline and, via cascade, its slots. Deleting an
// unknown id is a no-op.
func (r *DisciplineRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM disciplinas WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete discipline: %w", err)
	}

	return nil
}

func (r *DisciplineRepository) queryDisciplines(ctx context.Context, query string) ([]*model.Discipline, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get disciplines: %w", err)
	}
	defer rows.Close()

	var disciplines []*model.Discipline
	for rows.Next() {
		var d model.Discipline
		err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Active, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan discipline: %w", err)
		}
		disciplines = append(disciplines, &d)
	}

	return disciplines, nil
}

// CountActive reports the dashboard total of visitor-visible disciplines.
func (r *DisciplineRepository) CountActive(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM disciplinas WHERE activa = TRUE`

	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active disciplines: %w", err)
	}

	return count, nil
}
