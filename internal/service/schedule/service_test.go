package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SBS-SalonService/internal/infra/storage/schedule"
	"github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SBS-SalonService/internal/service/schedule/models"
)

// --- фейки для тестов ---

type fakeScheduleRepo struct {
	windows map[int64]*domain.WorkingHourWindow
	nextID  int64
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{windows: make(map[int64]*domain.WorkingHourWindow)}
}

func (f *fakeScheduleRepo) Create(_ context.Context, window *domain.WorkingHourWindow) (*domain.WorkingHourWindow, error) {
	f.nextID++
	created := *window
	created.ID = f.nextID
	f.windows[created.ID] = &created
	return &created, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.WorkingHourWindow, error) {
	window, ok := f.windows[id]
	if !ok {
		return nil, scheduleRepo.ErrWindowNotFound
	}
	return window, nil
}

func (f *fakeScheduleRepo) ListBySalon(_ context.Context, salonID int64) ([]*domain.WorkingHourWindow, error) {
	result := make([]*domain.WorkingHourWindow, 0)
	for _, window := range f.windows {
		if window.SalonID == salonID {
			result = append(result, window)
		}
	}
	return result, nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.windows[id]; !ok {
		return scheduleRepo.ErrWindowNotFound
	}
	delete(f.windows, id)
	return nil
}

type fakeSalonClient struct {
	salon *salonservice.Salon
}

func (f *fakeSalonClient) GetSalon(_ context.Context, salonID int64) (*salonservice.Salon, error) {
	if f.salon == nil || f.salon.ID != salonID {
		return nil, salonservice.ErrSalonNotFound
	}
	return f.salon, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// --- фикстуры ---

const (
	managerID  = int64(100)
	strangerID = int64(200)
)

func newTestService(repo *fakeScheduleRepo) *Service {
	client := &fakeSalonClient{
		salon: &salonservice.Salon{ID: 1, Name: "Belle Vue", ManagerIDs: []int64{managerID}},
	}
	return NewService(repo, client, noopLogger{})
}

func validCreateRequest() *models.CreateWindowRequest {
	return &models.CreateWindowRequest{
		UserID:     managerID,
		SalonID:    1,
		Weekdays:   []int{1, 2, 3},
		ServiceIDs: []int64{10},
		StaffIDs:   []int64{7},
		OpenTime:   "09:00",
		CloseTime:  "18:00",
	}
}

// --- тесты ---

func TestCreate_Success(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:00", resp.OpenTime)
	assert.Equal(t, "18:00", resp.CloseTime)
	assert.Equal(t, []int{1, 2, 3}, resp.Weekdays)
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo())

	cases := []struct {
		name   string
		mutate func(*models.CreateWindowRequest)
	}{
		{"zero salon", func(r *models.CreateWindowRequest) { r.SalonID = 0 }},
		{"no weekdays", func(r *models.CreateWindowRequest) { r.Weekdays = nil }},
		{"weekday out of range", func(r *models.CreateWindowRequest) { r.Weekdays = []int{7} }},
		{"negative weekday", func(r *models.CreateWindowRequest) { r.Weekdays = []int{-1} }},
		{"duplicate weekdays", func(r *models.CreateWindowRequest) { r.Weekdays = []int{1, 1} }},
		{"no services", func(r *models.CreateWindowRequest) { r.ServiceIDs = nil }},
		{"no staff", func(r *models.CreateWindowRequest) { r.StaffIDs = nil }},
		{"malformed open time", func(r *models.CreateWindowRequest) { r.OpenTime = "9am" }},
		{"open equals close", func(r *models.CreateWindowRequest) { r.OpenTime = "09:00"; r.CloseTime = "09:00" }},
		{"open after close", func(r *models.CreateWindowRequest) { r.OpenTime = "18:00"; r.CloseTime = "09:00" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validCreateRequest()
			c.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreate_AccessControl(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo())

	req := validCreateRequest()
	req.UserID = strangerID
	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req = validCreateRequest()
	req.SalonID = 999
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestListBySalon(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.ListBySalon(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, resp.Windows, 1)

	// Чужой салон - пустой список
	resp, err = svc.ListBySalon(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
}

func TestDelete(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Не менеджер не может удалить окно
	err = svc.Delete(context.Background(), created.ID, strangerID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Менеджер удаляет, окно пропадает из выдачи
	err = svc.Delete(context.Background(), created.ID, managerID)
	require.NoError(t, err)

	resp, err := svc.ListBySalon(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, resp.Windows)

	// Повторное удаление - not found
	err = svc.Delete(context.Background(), created.ID, managerID)
	assert.ErrorIs(t, err, ErrWindowNotFound)
}
