package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/LeandroManna/gimnasio-reservas/internal/model"
	"go.uber.org/zap"
)

type fakeDisciplineStore struct {
	disciplines map[int64]*model.Discipline
	nextID      int64
}

func newFakeDisciplineStore() *fakeDisciplineStore {
	return &fakeDisciplineStore{disciplines: map[int64]*model.Discipline{}}
}

func (f *fakeDisciplineStore) Create(_ context.Context, d *model.Discipline) error {
	f.nextID++
	d.ID = f.nextID
	d.Active = true
	stored := *d
	f.disciplines[d.ID] = &stored
	return nil
}

func (f *fakeDisciplineStore) GetByID(_ context.Context, id int64) (*model.Discipline, error) {
	return f.disciplines[id], nil
}

func (f *fakeDisciplineStore) GetAll(_ context.Context) ([]*model.Discipline, error) {
	var out []*model.Discipline
	for _, d := range f.disciplines {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDisciplineStore) GetActive(_ context.Context) ([]*model.Discipline, error) {
	var out []*model.Discipline
	for _, d := range f.disciplines {
		if d.Active {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDisciplineStore) ToggleActive(_ context.Context, id int64) error {
	if d, ok := f.disciplines[id]; ok {
		d.Active = !d.Active
	}
	return nil
}

func (f *fakeDisciplineStore) Delete(_ context.Context, id int64) error {
	delete(f.disciplines, id)
	return nil
}

func (f *fakeDisciplineStore) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, d := range f.disciplines {
		if d.Active {
			count++
		}
	}
	return count, nil
}

type fakeSlotStore struct {
	slots  map[int64]*model.ScheduleSlot
	nextID int64
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: map[int64]*model.ScheduleSlot{}}
}

func (f *fakeSlotStore) Create(_ context.Context, slot *model.ScheduleSlot) error {
	f.nextID++
	slot.ID = f.nextID
	stored := *slot
	f.slots[slot.ID] = &stored
	return nil
}

func (f *fakeSlotStore) GetByID(_ context.Context, id int64) (*model.ScheduleSlot, error) {
	return f.slots[id], nil
}

func (f *fakeSlotStore) GetByDisciplineID(_ context.Context, disciplineID int64) ([]*model.ScheduleSlot, error) {
	var out []*model.ScheduleSlot
	for _, s := range f.slots {
		if s.DisciplineID == disciplineID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotStore) Delete(_ context.Context, id int64) error {
	delete(f.slots, id)
	return nil
}

type fakeReservationAdminStore struct {
	details   []*model.ReservationDetail
	confirmed int
	deleted   []int64
}

func (f *fakeReservationAdminStore) GetAllDetailed(_ context.Context) ([]*model.ReservationDetail, error) {
	return f.details, nil
}

func (f *fakeReservationAdminStore) CountByStatus(_ context.Context, _ model.ReservationStatus) (int, error) {
	return f.confirmed, nil
}

func (f *fakeReservationAdminStore) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestSchedule(disciplines *fakeDisciplineStore, slots *fakeSlotStore, reservations *fakeReservationAdminStore) *ScheduleService {
	svc := NewScheduleService(disciplines, slots, reservations, zap.NewNop())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCreateSlotValidation(t *testing.T) {
	disciplines := newFakeDisciplineStore()
	slots := newFakeSlotStore()
	svc := newTestSchedule(disciplines, slots, &fakeReservationAdminStore{})
	ctx := context.Background()

	d, err := svc.CreateDiscipline(ctx, "Funcional", "Entrenamiento funcional")
	if err != nil {
		t.Fatalf("create discipline: %v", err)
	}

	cases := []struct {
		name     string
		day      string
		start    string
		capacity int
		wantErr  error
	}{
		{"ok", "Lunes", "09:00", 10, nil},
		{"accented day", "Miércoles", "18:30", 15, nil},
		{"bad day", "Funday", "09:00", 10, ErrValidation},
		{"bad time", "Lunes", "25:99", 10, ErrValidation},
		{"zero capacity", "Lunes", "09:00", 0, ErrValidation},
		{"negative capacity", "Lunes", "09:00", -3, ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSlot(ctx, d.ID, tc.day, tc.start, tc.capacity)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}

	if _, err := svc.CreateSlot(ctx, 999, "Lunes", "09:00", 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown discipline: want ErrNotFound, got %v", err)
	}
}

func TestToggleDisciplineRoundTrip(t *testing.T) {
	disciplines := newFakeDisciplineStore()
	svc := newTestSchedule(disciplines, newFakeSlotStore(), &fakeReservationAdminStore{})
	ctx := context.Background()

	d, err := svc.CreateDiscipline(ctx, "Spinning", "")
	if err != nil {
		t.Fatalf("create discipline: %v", err)
	}
	if !d.Active {
		t.Fatal("new disciplines start active")
	}

	if err := svc.ToggleDiscipline(ctx, d.ID); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if got, _ := disciplines.GetByID(ctx, d.ID); got.Active {
		t.Error("one toggle should deactivate")
	}

	if err := svc.ToggleDiscipline(ctx, d.ID); err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if got, _ := disciplines.GetByID(ctx, d.ID); !got.Active {
		t.Error("two toggles should restore the original state")
	}
}

// Deleting ids that do not exist still succeeds; the admin flow reports
// success either way.
func TestDeleteMissingIsNoOp(t *testing.T) {
	svc := newTestSchedule(newFakeDisciplineStore(), newFakeSlotStore(), &fakeReservationAdminStore{})
	ctx := context.Background()

	if err := svc.DeleteDiscipline(ctx, 12345); err != nil {
		t.Errorf("delete missing discipline: %v", err)
	}
	if err := svc.DeleteSlot(ctx, 12345); err != nil {
		t.Errorf("delete missing slot: %v", err)
	}
	if err := svc.DeleteReservation(ctx, 12345); err != nil {
		t.Errorf("delete missing reservation: %v", err)
	}
}

func TestWeekScheduleFor(t *testing.T) {
	disciplines := newFakeDisciplineStore()
	slots := newFakeSlotStore()
	svc := newTestSchedule(disciplines, slots, &fakeReservationAdminStore{})
	ctx := context.Background()

	d, err := svc.CreateDiscipline(ctx, "Crossfit", "")
	if err != nil {
		t.Fatalf("create discipline: %v", err)
	}

	// Deliberately created out of order; the grid sorts its hour rows.
	for _, s := range []struct {
		day   string
		start string
	}{
		{"Viernes", "18:00"},
		{"Lunes", "09:00"},
		{"Lunes", "18:00"},
	} {
		if _, err := svc.CreateSlot(ctx, d.ID, s.day, s.start, 10); err != nil {
			t.Fatalf("create slot %s %s: %v", s.day, s.start, err)
		}
	}

	_, week, err := svc.WeekScheduleFor(ctx, d.ID)
	if err != nil {
		t.Fatalf("WeekScheduleFor: %v", err)
	}

	if len(week.Days) != 7 || week.Days[0] != model.Lunes || week.Days[6] != model.Domingo {
		t.Errorf("days should span Lunes..Domingo: %v", week.Days)
	}

	// testNow is Wednesday 2026-08-26, so the week runs 24th through 30th.
	if len(week.Dates) != 7 {
		t.Fatalf("dates: want 7, got %d", len(week.Dates))
	}
	if got := week.Dates[0].Format("2006-01-02"); got != "2026-08-24" {
		t.Errorf("week should anchor on Monday: got %s", got)
	}
	if got := week.Dates[6].Format("2006-01-02"); got != "2026-08-30" {
		t.Errorf("week should end on Sunday: got %s", got)
	}

	wantHours := []string{"09:00", "18:00"}
	if len(week.Hours) != len(wantHours) {
		t.Fatalf("hours: want %v, got %v", wantHours, week.Hours)
	}
	for i, h := range week.Hours {
		if h.String() != wantHours[i] {
			t.Errorf("hours[%d]: want %s, got %s", i, wantHours[i], h)
		}
	}

	nine, _ := model.ParseTimeOfDay("09:00")
	six, _ := model.ParseTimeOfDay("18:00")
	if week.Grid[model.Lunes][nine] == nil || week.Grid[model.Lunes][six] == nil {
		t.Error("Lunes slots missing from grid")
	}
	if week.Grid[model.Viernes][six] == nil {
		t.Error("Viernes slot missing from grid")
	}
	if week.Grid[model.Viernes][nine] != nil {
		t.Error("grid has a slot that was never created")
	}

	if _, _, err := svc.WeekScheduleFor(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown discipline: want ErrNotFound, got %v", err)
	}
}

func TestDashboard(t *testing.T) {
	disciplines := newFakeDisciplineStore()
	reservations := &fakeReservationAdminStore{confirmed: 42}
	svc := newTestSchedule(disciplines, newFakeSlotStore(), reservations)
	ctx := context.Background()

	if _, err := svc.CreateDiscipline(ctx, "Yoga", ""); err != nil {
		t.Fatalf("create discipline: %v", err)
	}
	d2, err := svc.CreateDiscipline(ctx, "Pilates", "")
	if err != nil {
		t.Fatalf("create discipline: %v", err)
	}
	if err := svc.ToggleDiscipline(ctx, d2.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if stats.ConfirmedReservations != 42 {
		t.Errorf("confirmed: want 42, got %d", stats.ConfirmedReservations)
	}
	if stats.ActiveDisciplines != 1 {
		t.Errorf("active: want 1, got %d", stats.ActiveDisciplines)
	}
}
