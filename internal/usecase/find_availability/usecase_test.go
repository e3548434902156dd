package find_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
)

// --- фейки для тестов ---

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	staffSet := make(map[int64]struct{}, len(filter.StaffIDs))
	for _, id := range filter.StaffIDs {
		staffSet[id] = struct{}{}
	}

	result := make([]*domain.Appointment, 0)
	for _, appt := range f.appointments {
		if len(staffSet) > 0 {
			if _, ok := staffSet[appt.StaffID]; !ok {
				continue
			}
		}
		if filter.StartDate != nil && appt.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && appt.Date.After(*filter.EndDate) {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		result = append(result, appt)
	}
	return result, nil
}

type fakeScheduleRepo struct {
	windows []*domain.WorkingHourWindow
}

func (f *fakeScheduleRepo) ListBySalon(_ context.Context, _ int64) ([]*domain.WorkingHourWindow, error) {
	return f.windows, nil
}

type fakeSalonClient struct {
	salon    *salonservice.Salon
	services map[int64]*salonservice.Service
	staff    map[int64]salonservice.StaffMember
}

func (f *fakeSalonClient) GetSalon(_ context.Context, salonID int64) (*salonservice.Salon, error) {
	if f.salon == nil || f.salon.ID != salonID {
		return nil, salonservice.ErrSalonNotFound
	}
	return f.salon, nil
}

func (f *fakeSalonClient) GetService(_ context.Context, _, serviceID int64) (*salonservice.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, salonservice.ErrServiceNotFound
	}
	return service, nil
}

func (f *fakeSalonClient) GetStaffMembers(_ context.Context, _ int64, ids []int64) ([]salonservice.StaffMember, error) {
	members := make([]salonservice.StaffMember, 0, len(ids))
	for _, id := range ids {
		if m, ok := f.staff[id]; ok {
			members = append(members, m)
		}
	}
	return members, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

var (
	// Воскресенье, полдень
	testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	// Понедельник
	testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(apptRepo *fakeAppointmentRepo, schedRepo *fakeScheduleRepo, client *fakeSalonClient, cfg Config) *UseCase {
	uc := NewUseCase(apptRepo, schedRepo, client, cfg, noopLogger{})
	uc.WithTimeProvider(&fixedTimeProvider{now: testNow})
	return uc
}

func defaultClient() *fakeSalonClient {
	return &fakeSalonClient{
		salon: &salonservice.Salon{ID: 1, Name: "Belle Vue", ManagerIDs: []int64{100}},
		services: map[int64]*salonservice.Service{
			10: {ID: 10, SalonID: 1, Name: "Haircut", Price: 35, DurationMinutes: 30, Status: salonservice.ServiceAvailable},
		},
		staff: map[int64]salonservice.StaffMember{
			7: {ID: 7, SalonID: 1, DisplayName: "Anna Petrova", Photo: "https://cdn.example/staff/7.jpg"},
			8: {ID: 8, SalonID: 1, DisplayName: "Maria K.", Photo: "https://cdn.example/staff/8.jpg"},
		},
	}
}

func mondayMorningWindow(staffIDs ...int64) *domain.WorkingHourWindow {
	return &domain.WorkingHourWindow{
		ID:         1,
		SalonID:    1,
		Weekdays:   []int{1}, // понедельник
		ServiceIDs: []int64{10},
		StaffIDs:   staffIDs,
		OpenTime:   "09:00",
		CloseTime:  "12:00",
	}
}

// --- тесты ---

func TestExecute_BookedSlotIsRemoved(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{ID: 1, SalonID: 1, StaffID: 7, Date: testMonday, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusActive},
		},
	}
	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{mondayMorningWindow(7)}}, defaultClient(), Config{MaxQualifyingDays: 1})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	slots := resp.Days[0].SlotsByStaff[7]
	got := slotStrings(slots)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, got)
}

func TestExecute_CancellationFreesSlot(t *testing.T) {
	appt := &domain.Appointment{ID: 1, SalonID: 1, StaffID: 7, Date: testMonday, StartTime: "10:00", DurationMinutes: 30, Status: domain.StatusActive}
	apptRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{appt}}
	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{mondayMorningWindow(7)}}, defaultClient(), Config{MaxQualifyingDays: 1})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	assert.NotContains(t, slotStrings(resp.Days[0].SlotsByStaff[7]), "10:00")

	// Отмена записи возвращает слот в выдачу
	appt.Status = domain.StatusInactive

	resp, err = uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	assert.Contains(t, slotStrings(resp.Days[0].SlotsByStaff[7]), "10:00")
}

func TestExecute_Idempotent(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{ID: 1, SalonID: 1, StaffID: 7, Date: testMonday, StartTime: "09:30", DurationMinutes: 60, Status: domain.StatusActive},
		},
	}
	uc := newTestUseCase(apptRepo, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{mondayMorningWindow(7, 8)}}, defaultClient(), Config{})

	req := &Request{SalonID: 1, ServiceID: 10, Date: testMonday}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExecute_EarlyTerminationAfterQualifyingDays(t *testing.T) {
	everyDayWindow := &domain.WorkingHourWindow{
		ID:         1,
		SalonID:    1,
		Weekdays:   []int{0, 1, 2, 3, 4, 5, 6},
		ServiceIDs: []int64{10},
		StaffIDs:   []int64{7},
		OpenTime:   "09:00",
		CloseTime:  "10:00",
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{everyDayWindow}}, defaultClient(), Config{MaxQualifyingDays: 2})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)
	assert.Equal(t, testMonday, resp.Days[0].Date)
	assert.Equal(t, testMonday.AddDate(0, 0, 1), resp.Days[1].Date)
}

func TestExecute_NoQualifyingDaysIsSuccess(t *testing.T) {
	// Окон нет - пустой результат, не ошибка
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, defaultClient(), Config{MaxLookaheadDays: 14})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	assert.Empty(t, resp.Days)
	assert.Empty(t, resp.Staff)
}

func TestExecute_StaffFilter(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{mondayMorningWindow(7, 8)}}, defaultClient(), Config{MaxQualifyingDays: 1})

	staffID := int64(8)
	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday, StaffID: &staffID})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Contains(t, resp.Days[0].SlotsByStaff, int64(8))
	assert.NotContains(t, resp.Days[0].SlotsByStaff, int64(7))
}

func TestExecute_OverlappingWindowsDeduplicated(t *testing.T) {
	windows := []*domain.WorkingHourWindow{
		mondayMorningWindow(7),
		{
			ID:         2,
			SalonID:    1,
			Weekdays:   []int{1},
			ServiceIDs: []int64{10},
			StaffIDs:   []int64{7},
			OpenTime:   "10:00",
			CloseTime:  "13:00",
		},
	}
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{windows: windows}, defaultClient(), Config{MaxQualifyingDays: 1})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)

	// Пересечение 10:00-12:00 не дает дубликатов, объединение отсортировано
	got := slotStrings(resp.Days[0].SlotsByStaff[7])
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00", "12:30"}, got)
}

func TestExecute_PastSuppressionUsesUTCDay(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{mondayMorningWindow(7)}}, defaultClient(), Config{MaxQualifyingDays: 1})
	// Локально 2 марта 10:30, по UTC уже 15:30 - утреннее окно понедельника закрыто
	uc.WithTimeProvider(&fixedTimeProvider{
		now: time.Date(2026, 3, 2, 10, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)),
	})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)

	// Первый подходящий день - следующий понедельник, прошедшее по UTC утро не предлагается
	assert.Equal(t, testMonday.AddDate(0, 0, 7), resp.Days[0].Date)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slotStrings(resp.Days[0].SlotsByStaff[7]))
}

func TestExecute_StaffSummariesUseFirstNameToken(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{windows: []*domain.WorkingHourWindow{mondayMorningWindow(7, 8)}}, defaultClient(), Config{MaxQualifyingDays: 1})

	resp, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Staff, 2)
	assert.Equal(t, "Anna", resp.Staff[0].FirstName)
	assert.Equal(t, "Maria", resp.Staff[1].FirstName)
}

func TestExecute_Errors(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, defaultClient(), Config{})

	_, err := uc.Execute(context.Background(), &Request{SalonID: 99, ServiceID: 10, Date: testMonday})
	assert.ErrorIs(t, err, ErrSalonNotFound)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 99, Date: testMonday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 0, ServiceID: 10, Date: testMonday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnavailableService(t *testing.T) {
	client := defaultClient()
	client.services[10].Status = salonservice.ServiceUnavailable

	uc := newTestUseCase(&fakeAppointmentRepo{}, &fakeScheduleRepo{}, client, Config{})

	_, err := uc.Execute(context.Background(), &Request{SalonID: 1, ServiceID: 10, Date: testMonday})
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}
