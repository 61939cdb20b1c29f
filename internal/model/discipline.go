package model

import "time"

type Discipline struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Active      bool      `json:"activa"`
	CreatedAt   time.Time `json:"created_at"`
}
