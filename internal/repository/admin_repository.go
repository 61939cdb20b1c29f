package repository

import (
	"context"
	"fmt"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// GetByUsername returns nil when no such admin account exists.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `
		SELECT id, usuario, password_hash, email
		FROM administradores
		WHERE usuario = $1
	`

	var admin model.Admin
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.Email,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by username: %w", err)
	}

	return &admin, nil
}
