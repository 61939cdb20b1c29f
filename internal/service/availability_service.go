package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"github.com/LeandroManna/gimnasio-reservas/internal/repository"
	"go.uber.org/zap"
)

const maxReceiptSize = 5 << 20 // 5 MB

var allowedReceiptExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// SlotGetter resolves schedule slots by id.
type SlotGetter interface {
	GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error)
}

// DisciplineGetter resolves disciplines by id.
type DisciplineGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Discipline, error)
}

// ReservationLedger is the reservation store as the availability engine
// sees it. InAdmissionTx must serialize callers per (slot, date) pair.
type ReservationLedger interface {
	CountConfirmed(ctx context.Context, slotID int64, date time.Time) (int, error)
	InAdmissionTx(ctx context.Context, slotID int64, date time.Time, fn func(tx repository.ReservationTx) error) error
}

// ReceiptStore persists uploaded payment receipts.
type ReceiptStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, name string) error
}

// Notifier is told about every admitted reservation.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, res *model.Reservation, slot *model.ScheduleSlot, disciplineName string)
}

// ReceiptUpload carries an uploaded receipt file into an admission.
type ReceiptUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// AdmissionRequest is a visitor's attempt to reserve a seat.
type AdmissionRequest struct {
	SlotID    int64
	ClassDate time.Time
	FirstName string
	LastName  string
	DNI       string
	Receipt   *ReceiptUpload
}

// AvailabilityService is the single decision point for whether a
// reservation may be admitted, and reports seat counts.
type AvailabilityService struct {
	slots       SlotGetter
	disciplines DisciplineGetter
	ledger      ReservationLedger
	receipts    ReceiptStore
	notifier    Notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewAvailabilityService(
	slots SlotGetter,
	disciplines DisciplineGetter,
	ledger ReservationLedger,
	receipts ReceiptStore,
	notifier Notifier,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		slots:       slots,
		disciplines: disciplines,
		ledger:      ledger,
		receipts:    receipts,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// CheckAvailability reports seat counts for a slot on a date. No side
// effects; the result may be stale by the time a booking arrives.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, slotID int64, date time.Time) (*model.SlotAvailability, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %d: %w", slotID, ErrNotFound)
	}

	confirmed, err := s.ledger.CountConfirmed(ctx, slotID, date)
	if err != nil {
		return nil, fmt.Errorf("count confirmed: %w", err)
	}

	remaining := slot.MaxCapacity - confirmed
	return &model.SlotAvailability{
		MaxCapacity:    slot.MaxCapacity,
		ConfirmedCount: confirmed,
		Remaining:      remaining,
		Available:      remaining > 0,
	}, nil
}

// AdmitReservation runs the fixed validation sequence and inserts the
// reservation. The duplicate and capacity checks plus the insert run
// inside one transaction serialized per (slot, date), so concurrent
// admissions cannot push the confirmed count past the slot capacity.
func (s *AvailabilityService) AdmitReservation(ctx context.Context, req AdmissionRequest) (*model.Reservation, error) {
	if req.FirstName == "" || req.LastName == "" || req.DNI == "" {
		return nil, fmt.Errorf("%w: nombre, apellido and dni are required", ErrValidation)
	}

	slot, err := s.slots.GetByID(ctx, req.SlotID)
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot == nil {
		return nil, fmt.Errorf("slot %d: %w", req.SlotID, ErrNotFound)
	}

	// Class start is the slot's time of day on the requested date. The
	// date carries only its year/month/day; the instant is built in the
	// clock's zone so the cutoff matches the wall clock the gym runs on.
	now := s.now()
	if classStart(slot.StartTime, req.ClassDate, now.Location()).Before(now) {
		return nil, ErrPastSlot
	}

	if req.Receipt != nil {
		if err := validateReceipt(req.Receipt); err != nil {
			return nil, err
		}
	}

	res := &model.Reservation{
		SlotID:    req.SlotID,
		ClassDate: req.ClassDate,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DNI:       req.DNI,
		Status:    model.ReservationStatusConfirmed,
	}

	var storedReceipt string
	err = s.ledger.InAdmissionTx(ctx, req.SlotID, req.ClassDate, func(tx repository.ReservationTx) error {
		exists, err := tx.ExistsForIdentity(ctx, req.SlotID, req.ClassDate, req.DNI)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateIdentity
		}

		confirmed, err := tx.CountConfirmed(ctx, req.SlotID, req.ClassDate)
		if err != nil {
			return err
		}
		if confirmed >= slot.MaxCapacity {
			return ErrCapacityExceeded
		}

		// The receipt must be durable before the row references it.
		if req.Receipt != nil {
			name := receiptFileName(req.DNI, req.Receipt.FileName, s.now())
			if err := s.receipts.Save(ctx, name, req.Receipt.Content, req.Receipt.Size, req.Receipt.ContentType); err != nil {
				return fmt.Errorf("store receipt: %w", err)
			}
			storedReceipt = name
			res.ReceiptFile = &name
		}

		return tx.Insert(ctx, res)
	})

	if err != nil {
		// The file outlived a failed admission; try not to leak it.
		if storedReceipt != "" {
			if rmErr := s.receipts.Remove(ctx, storedReceipt); rmErr != nil {
				s.logger.Warn("failed to remove orphan receipt",
					zap.String("file", storedReceipt),
					zap.Error(rmErr),
				)
			}
		}
		return nil, err
	}

	s.logger.Info("Reservation admitted",
		zap.Int64("reservation_id", res.ID),
		zap.Int64("slot_id", req.SlotID),
		zap.String("fecha_clase", req.ClassDate.Format("2006-01-02")),
		zap.String("dni", req.DNI),
		zap.Bool("receipt", res.ReceiptFile != nil),
	)

	if s.notifier != nil {
		disciplineName := ""
		if d, err := s.disciplines.GetByID(ctx, slot.DisciplineID); err == nil && d != nil {
			disciplineName = d.Name
		}
		s.notifier.ReservationConfirmed(ctx, res, slot, disciplineName)
	}

	return res, nil
}

func classStart(start model.TimeOfDay, date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return start.At(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

func validateReceipt(r *ReceiptUpload) error {
	ext := strings.ToLower(filepath.Ext(r.FileName))
	if !allowedReceiptExts[ext] {
		return fmt.Errorf("%w: receipt type %q not allowed", ErrValidation, ext)
	}
	if r.Size > maxReceiptSize {
		return fmt.Errorf("%w: receipt exceeds %d bytes", ErrValidation, maxReceiptSize)
	}
	return nil
}

// receiptFileName prefixes the sanitized original name with the document
// and a timestamp, matching how files are located on disk by staff.
func receiptFileName(dni, original string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", sanitizeFileName(dni), now.Format("20060102150405"), sanitizeFileName(filepath.Base(original)))
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
