package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"go.uber.org/zap"
)

// DisciplineStore is the discipline CRUD surface.
type DisciplineStore interface {
	Create(ctx context.Context, d *model.Discipline) error
	GetByID(ctx context.Context, id int64) (*model.Discipline, error)
	GetAll(ctx context.Context) ([]*model.Discipline, error)
	GetActive(ctx context.Context) ([]*model.Discipline, error)
	ToggleActive(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	CountActive(ctx context.Context) (int, error)
}

// SlotStore is the schedule-slot CRUD surface.
type SlotStore interface {
	Create(ctx context.Context, slot *model.ScheduleSlot) error
	GetByID(ctx context.Context, id int64) (*model.ScheduleSlot, error)
	GetByDisciplineID(ctx context.Context, disciplineID int64) ([]*model.ScheduleSlot, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationAdminStore is the ledger surface for the admin panel.
type ReservationAdminStore interface {
	GetAllDetailed(ctx context.Context) ([]*model.ReservationDetail, error)
	CountByStatus(ctx context.Context, status model.ReservationStatus) (int, error)
	Delete(ctx context.Context, id int64) error
}

// WeekSchedule is the booking grid for one discipline: every weekday of
// the current week with the discipline's slots keyed by day and hour.
type WeekSchedule struct {
	Days  []model.Weekday
	Dates []time.Time
	Hours []model.TimeOfDay
	Grid  map[model.Weekday]map[model.TimeOfDay]*model.ScheduleSlot
}

// DashboardStats are the admin landing page totals.
type DashboardStats struct {
	ConfirmedReservations int
	ActiveDisciplines     int
}

// ScheduleService manages disciplines and their weekly slots, and
// assembles the visitor-facing booking grid.
type ScheduleService struct {
	disciplines  DisciplineStore
	slots        SlotStore
	reservations ReservationAdminStore
	logger       *zap.Logger
	now          func() time.Time
}

func NewScheduleService(
	disciplines DisciplineStore,
	slots SlotStore,
	reservations ReservationAdminStore,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		disciplines:  disciplines,
		slots:        slots,
		reservations: reservations,
		logger:       logger,
		now:          time.Now,
	}
}

// ActiveDisciplines lists what visitors can book.
func (s *ScheduleService) ActiveDisciplines(ctx context.Context) ([]*model.Discipline, error) {
	return s.disciplines.GetActive(ctx)
}

// AllDisciplines lists everything for the admin panel.
func (s *ScheduleService) AllDisciplines(ctx context.Context) ([]*model.Discipline, error) {
	return s.disciplines.GetAll(ctx)
}

func (s *ScheduleService) GetDiscipline(ctx context.Context, id int64) (*model.Discipline, error) {
	d, err := s.disciplines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, fmt.Errorf("discipline %d: %w", id, ErrNotFound)
	}
	return d, nil
}

func (s *ScheduleService) CreateDiscipline(ctx context.Context, name, description string) (*model.Discipline, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrValidation)
	}

	d := &model.Discipline{Name: name, Description: description}
	if err := s.disciplines.Create(ctx, d); err != nil {
		return nil, err
	}

	s.logger.Info("Discipline created",
		zap.Int64("discipline_id", d.ID),
		zap.String("nombre", d.Name),
	)

	return d, nil
}

// ToggleDiscipline flips visitor visibility. Applying it twice returns
// the discipline to its original state.
func (s *ScheduleService) ToggleDiscipline(ctx context.Context, id int64) error {
	return s.disciplines.ToggleActive(ctx, id)
}

func (s *ScheduleService) DeleteDiscipline(ctx context.Context, id int64) error {
	if err := s.disciplines.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Discipline deleted", zap.Int64("discipline_id", id))
	return nil
}

// DisciplineSlots returns a discipline's slots in grid order for the
// admin schedule page.
func (s *ScheduleService) DisciplineSlots(ctx context.Context, disciplineID int64) ([]*model.ScheduleSlot, error) {
	return s.slots.GetByDisciplineID(ctx, disciplineID)
}

// CreateSlot parses and validates the day name, HH:MM start time and
// capacity coming off the admin form. Day and time are immutable after
// this point; there is no slot edit operation.
func (s *ScheduleService) CreateSlot(ctx context.Context, disciplineID int64, dayName, startTime string, maxCapacity int) (*model.ScheduleSlot, error) {
	discipline, err := s.disciplines.GetByID(ctx, disciplineID)
	if err != nil {
		return nil, err
	}
	if discipline == nil {
		return nil, fmt.Errorf("discipline %d: %w", disciplineID, ErrNotFound)
	}

	weekday, err := model.ParseWeekday(dayName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	start, err := model.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if maxCapacity <= 0 {
		return nil, fmt.Errorf("%w: cupo_maximo must be positive", ErrValidation)
	}

	slot := &model.ScheduleSlot{
		DisciplineID: disciplineID,
		Weekday:      weekday,
		StartTime:    start,
		MaxCapacity:  maxCapacity,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("discipline_id", disciplineID),
		zap.String("dia_semana", weekday.String()),
		zap.String("hora_inicio", start.String()),
		zap.Int("cupo_maximo", maxCapacity),
	)

	return slot, nil
}

func (s *ScheduleService) DeleteSlot(ctx context.Context, id int64) error {
	if err := s.slots.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Slot deleted", zap.Int64("slot_id", id))
	return nil
}

// WeekScheduleFor assembles the booking grid for a discipline: the
// current week's dates anchored on Monday and the slots keyed by weekday
// and start hour, with hours sorted for the row headers.
func (s *ScheduleService) WeekScheduleFor(ctx context.Context, disciplineID int64) (*model.Discipline, *WeekSchedule, error) {
	discipline, err := s.GetDiscipline(ctx, disciplineID)
	if err != nil {
		return nil, nil, err
	}

	slots, err := s.slots.GetByDisciplineID(ctx, disciplineID)
	if err != nil {
		return nil, nil, err
	}

	week := &WeekSchedule{
		Days:  make([]model.Weekday, 7),
		Dates: weekDates(s.now()),
		Grid:  make(map[model.Weekday]map[model.TimeOfDay]*model.ScheduleSlot),
	}

	for i := range week.Days {
		week.Days[i] = model.Weekday(i)
	}

	seen := make(map[model.TimeOfDay]bool)
	for _, slot := range slots {
		if week.Grid[slot.Weekday] == nil {
			week.Grid[slot.Weekday] = make(map[model.TimeOfDay]*model.ScheduleSlot)
		}
		week.Grid[slot.Weekday][slot.StartTime] = slot

		if !seen[slot.StartTime] {
			seen[slot.StartTime] = true
			week.Hours = append(week.Hours, slot.StartTime)
		}
	}

	sort.Slice(week.Hours, func(i, j int) bool { return week.Hours[i] < week.Hours[j] })

	return discipline, week, nil
}

// Reservations lists the full ledger for the admin panel.
func (s *ScheduleService) Reservations(ctx context.Context) ([]*model.ReservationDetail, error) {
	return s.reservations.GetAllDetailed(ctx)
}

func (s *ScheduleService) DeleteReservation(ctx context.Context, id int64) error {
	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Reservation deleted", zap.Int64("reservation_id", id))
	return nil
}

// Dashboard returns the admin landing page totals.
func (s *ScheduleService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	confirmed, err := s.reservations.CountByStatus(ctx, model.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}

	active, err := s.disciplines.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		ConfirmedReservations: confirmed,
		ActiveDisciplines:     active,
	}, nil
}

// weekDates returns the seven dates of now's week, Monday first.
func weekDates(now time.Time) []time.Time {
	monday := now.AddDate(0, 0, -int(model.WeekdayOf(now)))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())

	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i)
	}
	return dates
}
