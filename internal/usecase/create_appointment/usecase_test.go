package create_appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/internal/integrations/clientservice"
	"github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// --- фейки для тестов ---

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments []*domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *appointment
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.appointments = append(f.appointments, &created)
	return &created, nil
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

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

type fakeClientClient struct {
	clients map[int64]*clientservice.ClientInfo
}

func (f *fakeClientClient) GetClient(_ context.Context, clientID int64) (*clientservice.ClientInfo, error) {
	client, ok := f.clients[clientID]
	if !ok {
		return nil, clientservice.ErrClientNotFound
	}
	return client, nil
}

// fakeTxManager сериализует транзакции мьютексом - модель сериализуемой
// изоляции для проверки гонки двух конкурентных коммитов
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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
	testNow    = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
)

func newTestUseCase(repo *fakeAppointmentRepo) *UseCase {
	salonClient := &fakeSalonClient{
		salon: &salonservice.Salon{ID: 1, Name: "Belle Vue", ManagerIDs: []int64{100}},
		services: map[int64]*salonservice.Service{
			10: {ID: 10, SalonID: 1, Name: "Haircut", Price: 35, DurationMinutes: 30, Status: salonservice.ServiceAvailable},
			11: {ID: 11, SalonID: 1, Name: "Styling", Price: 20, DurationMinutes: 30, Status: salonservice.ServiceAvailable},
			12: {ID: 12, SalonID: 1, Name: "Coloring", Price: 60, DurationMinutes: 60, Status: salonservice.ServiceUnavailable},
		},
		staff: map[int64]salonservice.StaffMember{
			7: {ID: 7, SalonID: 1, DisplayName: "Anna Petrova"},
		},
	}
	clientClient := &fakeClientClient{
		clients: map[int64]*clientservice.ClientInfo{
			42: {ID: 42, Name: "Ivan Ivanov"},
		},
	}

	uc := NewUseCase(repo, salonClient, clientClient, &fakeTxManager{}, noopLogger{})
	uc.WithTimeProvider(&fixedTimeProvider{now: testNow})
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:  42,
		SalonID:   1,
		ServiceID: 10,
		StaffID:   7,
		Date:      testMonday,
		StartTime: "10:00",
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 35.0, resp.PriceTotal)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	require.Len(t, repo.appointments, 1)
}

func TestExecute_ExtraServicesExtendDurationAndPrice(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	req := validRequest()
	req.ExtraServiceIDs = []int64{11}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// 30 + 30 минут, 35 + 20
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 55.0, resp.PriceTotal)
	assert.Equal(t, "Haircut", resp.ServiceName)
}

func TestExecute_ConflictRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Тот же мастер, тот же слот
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
	assert.Len(t, repo.appointments, 1)
}

func TestExecute_OverlapFromBeforeRejected(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	// Длинная запись 09:30-11:00
	first := validRequest()
	first.StartTime = "09:30"
	first.ExtraServiceIDs = []int64{11}

	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Новая запись 10:00 начинается внутри существующего интервала,
	// хотя существующая запись стартовала раньше
	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeSlotConflict)
}

func TestExecute_AdjacentAppointmentsAllowed(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Запись впритык: 10:30 сразу после 10:00-10:30
	next := validRequest()
	next.StartTime = "10:30"

	_, err = uc.Execute(context.Background(), next)
	require.NoError(t, err)
	assert.Len(t, repo.appointments, 2)
}

func TestExecute_InactiveAppointmentDoesNotBlock(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	repo.appointments = append(repo.appointments, &domain.Appointment{
		ID: 99, SalonID: 1, ClientID: 42, StaffID: 7,
		Date: testMonday, StartTime: "10:00", DurationMinutes: 30,
		Status: domain.StatusInactive,
	})
	repo.nextID = 99
	uc := newTestUseCase(repo)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_PastRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	// Прошедшая дата
	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	// Сегодня, но время уже прошло (сейчас 12:00)
	req = validRequest()
	req.Date = testNow
	req.StartTime = "11:30"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastStartTime)

	// Сегодня, время еще впереди
	req = validRequest()
	req.Date = testNow
	req.StartTime = "12:30"
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_PastChecksUseUTCDay(t *testing.T) {
	// Даты запроса - календарные дни UTC; локальная зона серверных часов
	// не должна сдвигать классификацию сегодня/прошлое

	t.Run("день, закончившийся по UTC, отклоняется", func(t *testing.T) {
		uc := newTestUseCase(&fakeAppointmentRepo{})
		// Локально еще 1 марта 20:00, по UTC уже 2 марта 01:00
		uc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 3, 1, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
		})

		req := validRequest()
		req.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		req.StartTime = "21:00"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("завтрашний по UTC день принимается", func(t *testing.T) {
		uc := newTestUseCase(&fakeAppointmentRepo{})
		// Локально уже 2 марта 01:30, по UTC еще 1 марта 22:30
		uc.WithTimeProvider(&fixedTimeProvider{
			now: time.Date(2026, 3, 2, 1, 30, 0, 0, time.FixedZone("UTC+3", 3*3600)),
		})

		req := validRequest() // Date = 2 марта
		req.StartTime = "00:30"

		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestExecute_NotFoundEntities(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	req := validRequest()
	req.ClientID = 999
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClientNotFound)

	req = validRequest()
	req.SalonID = 999
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSalonNotFound)

	req = validRequest()
	req.ServiceID = 999
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = validRequest()
	req.StaffID = 999
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_UnavailableServiceRejected(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	req := validRequest()
	req.ServiceID = 12
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceUnavailable)

	// Недоступная дополнительная услуга тоже отклоняется
	req = validRequest()
	req.ExtraServiceIDs = []int64{12}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(&fakeAppointmentRepo{})

	cases := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero client", func(r *Request) { r.ClientID = 0 }},
		{"zero salon", func(r *Request) { r.SalonID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero staff", func(r *Request) { r.StaffID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "25:99" }},
		{"extra duplicates primary", func(r *Request) { r.ExtraServiceIDs = []int64{10} }},
		{"duplicate extras", func(r *Request) { r.ExtraServiceIDs = []int64{11, 11} }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validRequest()
			c.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentCommitsOnlyOneWins(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	uc := newTestUseCase(repo)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrTimeSlotConflict)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.appointments, 1)
}
