package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReservationTx is the view of an admission transaction handed to the
// availability engine. All calls run on the same serialized transaction.
type ReservationTx interface {
	CountConfirmed(ctx context.Context, slotID int64, date time.Time) (int, error)
	ExistsForIdentity(ctx context.Context, slotID int64, date time.Time, dni string) (bool, error)
	Insert(ctx context.Context, res *model.Reservation) error
}

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

// InAdmissionTx runs fn inside a transaction that holds an advisory lock
// on the (slot, date) pair. Two admissions for the same pair cannot
// interleave between the capacity check and the insert; admissions for
// different pairs proceed independently. The lock releases on commit or
// rollback.
func (r *ReservationRepository) InAdmissionTx(ctx context.Context, slotID int64, date time.Time, fn func(tx ReservationTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, admissionLockKey(slotID, date)); err != nil {
		return fmt.Errorf("acquire slot-date lock: %w", err)
	}

	if err := fn(&reservationTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// admissionLockKey packs the slot id and the class date's epoch day
// into the single bigint key space of pg_advisory_xact_lock. Epoch days
// stay far below 2^20, so distinct (slot, date) pairs map to distinct
// keys without truncating the id.
func admissionLockKey(slotID int64, date time.Time) int64 {
	return slotID<<20 | (date.Unix() / 86400)
}

// CountConfirmed counts confirmed reservations for a slot on a date.
// Cancelled rows do not hold a seat.
func (r *ReservationRepository) CountConfirmed(ctx context.Context, slotID int64, date time.Time) (int, error) {
	return countConfirmed(ctx, r.pool, slotID, date)
}

// GetAllDetailed returns every reservation joined with its slot time and
// discipline name, newest class first. The join is LEFT so rows whose
// slot was deleted afterwards still show up.
func (r *ReservationRepository) GetAllDetailed(ctx context.Context) ([]*model.ReservationDetail, error) {
	query := `
		SELECT r.id, r.horario_id, r.fecha_clase, r.nombre, r.apellido, r.dni,
		       r.comprobante_pago, r.estado, r.created_at,
		       h.hora_inicio, COALESCE(d.nombre, '')
		FROM reservas r
		LEFT JOIN horarios h ON r.horario_id = h.id
		LEFT JOIN disciplinas d ON h.disciplina_id = d.id
		ORDER BY r.fecha_clase DESC, h.hora_inicio DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*model.ReservationDetail
	for rows.Next() {
		var d model.ReservationDetail
		var startTime *int
		err := rows.Scan(
			&d.ID,
			&d.SlotID,
			&d.ClassDate,
			&d.FirstName,
			&d.LastName,
			&d.DNI,
			&d.ReceiptFile,
			&d.Status,
			&d.CreatedAt,
			&startTime,
			&d.DisciplineName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		if startTime != nil {
			t := model.TimeOfDay(*startTime)
			d.StartTime = &t
		}
		reservations = append(reservations, &d)
	}

	return reservations, nil
}

// CountByStatus reports the dashboard total for a status.
func (r *ReservationRepository) CountByStatus(ctx context.Context, status model.ReservationStatus) (int, error) {
	query := `SELECT COUNT(*) FROM reservas WHERE estado = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, fmt.Errorf("count reservations: %w", err)
	}

	return count, nil
}

// Delete removes a reservation. Deleting an unknown id is a no-op.
func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM reservas WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}

	return nil
}

// reservationTx binds the admission queries to an open transaction.
type reservationTx struct {
	tx pgx.Tx
}

func (t *reservationTx) CountConfirmed(ctx context.Context, slotID int64, date time.Time) (int, error) {
	return countConfirmed(ctx, t.tx, slotID, date)
}

// ExistsForIdentity checks the one-reservation-per-DNI rule for a class.
// Status is deliberately ignored: a cancelled reservation still blocks
// the same document.
func (t *reservationTx) ExistsForIdentity(ctx context.Context, slotID int64, date time.Time, dni string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reservas
			WHERE horario_id = $1 AND fecha_clase = $2 AND dni = $3
		)
	`

	var exists bool
	if err := t.tx.QueryRow(ctx, query, slotID, date, dni).Scan(&exists); err != nil {
		return false, fmt.Errorf("check reservation exists: %w", err)
	}

	return exists, nil
}

func (t *reservationTx) Insert(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservas (horario_id, fecha_clase, nombre, apellido, dni, comprobante_pago, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := t.tx.QueryRow(
		ctx, query,
		res.SlotID,
		res.ClassDate,
		res.FirstName,
		res.LastName,
		res.DNI,
		res.ReceiptFile,
		res.Status,
	).Scan(&res.ID, &res.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}

	return nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func countConfirmed(ctx context.Context, q querier, slotID int64, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM reservas
		WHERE horario_id = $1 AND fecha_clase = $2 AND estado = 'confirmada'
	`

	var count int
	if err := q.QueryRow(ctx, query, slotID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("count confirmed reservations: %w", err)
	}

	return count, nil
}
