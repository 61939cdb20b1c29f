package model

import "time"

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmada"
	ReservationStatusCancelled ReservationStatus = "cancelada"
)

type Reservation struct {
	ID          int64             `json:"id"`
	SlotID      int64             `json:"horario_id"`
	ClassDate   time.Time         `json:"fecha_clase"`
	FirstName   string            `json:"nombre"`
	LastName    string            `json:"apellido"`
	DNI         string            `json:"dni"`
	ReceiptFile *string           `json:"comprobante_pago"` // nil when no receipt was uploaded
	Status      ReservationStatus `json:"estado"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ReservationDetail is the admin listing row: a reservation joined with
// its slot time and discipline name. Slot fields may be empty when the
// slot was deleted after the reservation was made.
type ReservationDetail struct {
	Reservation
	StartTime      *TimeOfDay `json:"hora_inicio"`
	DisciplineName string     `json:"disciplina"`
}
