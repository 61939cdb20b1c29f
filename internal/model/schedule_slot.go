package model

import "time"

// ScheduleSlot is a recurring weekly class offering of a discipline.
// Day and start time are immutable once created.
type ScheduleSlot struct {
	ID           int64     `json:"id"`
	DisciplineID int64     `json:"disciplina_id"`
	Weekday      Weekday   `json:"dia_semana"`
	StartTime    TimeOfDay `json:"hora_inicio"`
	MaxCapacity  int       `json:"cupo_maximo"`
	CreatedAt    time.Time `json:"created_at"`
}

// SlotAvailability reports seat counts for a slot on a concrete date.
type SlotAvailability struct {
	MaxCapacity    int `json:"cupo_maximo"`
	ConfirmedCount int `json:"reservas_confirmadas"`
	Remaining      int `json:"cupos_restantes"`

	Available bool `json:"disponible"`
}
