package repository

import (
	"context"
	"fmt"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create inserts a new weekly slot for a discipline.
func (r *SlotRepository) Create(ctx context.Context, slot *model.ScheduleSlot) error {
	query := `
		INSERT INTO horarios (disciplina_id, dia_semana, hora_inicio, cupo_maximo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.DisciplineID,
		int(slot.Weekday),
		int(slot.StartTime),
		slot.MaxCapacity,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID returns nil when the slot does not exist.
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error) {
	query := `
		SELECT id, disciplina_id, dia_semana, hora_inicio, cupo_maximo, created_at
		FROM horarios
		WHERE id = $1
	`

	var slot model.ScheduleSlot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.DisciplineID,
		&slot.Weekday,
		&slot.StartTime,
		&slot.MaxCapacity,
		&slot.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// GetByDisciplineID returns a discipline's slots in grid order:
// weekday ordinal first, then start time.
func (r *SlotRepository) GetByDisciplineID(ctx context.Context, disciplineID int64) ([]*model.ScheduleSlot, error) {
	query := `
		SELECT id, disciplina_id, dia_semana, hora_inicio, cupo_maximo, created_at
		FROM horarios
		WHERE disciplina_id = $1
		ORDER BY dia_semana, hora_inicio
	`

	rows, err := r.pool.Query(ctx, query, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("get slots by discipline: %w", err)
	}
	defer rows.Close()

	var slots []*model.ScheduleSlot
	for rows.Next() {
		var slot model.ScheduleSlot
		err := rows.Scan(
			&slot.ID,
			&slot.DisciplineID,
			&slot.Weekday,
			&slot.StartTime,
			&slot.MaxCapacity,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}

// Delete removes a slot. Deleting an unknown id is a no-op.
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM horarios WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	return nil
}
