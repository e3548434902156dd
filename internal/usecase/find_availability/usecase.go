package find_availability

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	salonClient "github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// UseCase use case поиска доступных слотов для записи.
// Идет по дням вперед от стартовой даты (не больше MaxLookaheadDays итераций)
// и останавливается, как только набрано MaxQualifyingDays дней, в которых
// хотя бы у одного мастера есть свободный слот.
type UseCase struct {
	appointmentRepo AppointmentRepository
	scheduleRepo    ScheduleRepository
	salonClient     SalonServiceClient
	timeProvider    TimeProvider
	config          Config
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	scheduleRepo ScheduleRepository,
	salonClient SalonServiceClient,
	config Config,
	logger Logger,
) *UseCase {
	if config.SlotDurationMinutes <= 0 {
		config.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if config.MaxLookaheadDays <= 0 {
		config.MaxLookaheadDays = domain.DefaultMaxLookaheadDays
	}
	if config.MaxQualifyingDays <= 0 {
		config.MaxQualifyingDays = domain.DefaultMaxQualifyingDays
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		scheduleRepo:    scheduleRepo,
		salonClient:     salonClient,
		timeProvider:    &RealTimeProvider{},
		config:          config,
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет поиск доступности.
// Read-only путь: результат - моментальный снимок, к моменту создания записи
// слот может быть уже занят, коммиттер перепроверяет конфликты в транзакции.
// Ноль подходящих дней - валидный успешный результат, не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailability: salon=%d, service=%d, date=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время.
	// Стартовая дата парсится как UTC-полночь, поэтому часы приводим к UTC,
	// иначе около местной полуночи классификация сегодня/прошлое съезжает на сутки
	now := uc.timeProvider.Now().In(time.UTC)

	// 3. Получаем салон
	if _, err := uc.salonClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("FindAvailability: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("FindAvailability: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу
	service, err := uc.salonClient.GetService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		if errors.Is(err, salonClient.ErrServiceNotFound) {
			uc.logger.Warn("FindAvailability: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("FindAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("FindAvailability: service id=%d is not bookable (status=%s)", req.ServiceID, service.Status)
		return nil, ErrServiceUnavailable
	}

	// 5. Загружаем все окна рабочих часов салона одним запросом
	windows, err := uc.scheduleRepo.ListBySalon(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("FindAvailability: failed to list schedule windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list schedule windows: %v", ErrInternal, err)
	}

	// 6. Идем по дням вперед; стартовая дата в прошлом поднимается до сегодня
	date := startOfDay(req.Date)
	if date.Before(startOfDay(now)) {
		date = startOfDay(now)
	}

	days := make([]DaySchedule, 0, uc.config.MaxQualifyingDays)
	staffIDSet := make(map[int64]struct{})

	for i := 0; i < uc.config.MaxLookaheadDays && len(days) < uc.config.MaxQualifyingDays; i++ {
		day, err := uc.resolveDay(ctx, req, windows, date, now)
		if err != nil {
			return nil, err
		}

		if day != nil {
			days = append(days, *day)
			for staffID := range day.SlotsByStaff {
				staffIDSet[staffID] = struct{}{}
			}
		}

		date = date.AddDate(0, 0, 1)
	}

	// 7. Сводки мастеров, встречающихся в найденных днях
	staff, err := uc.loadStaffSummaries(ctx, req.SalonID, staffIDSet)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("FindAvailability: found %d qualifying days, %d staff members for salon=%d, service=%d",
		len(days), len(staff), req.SalonID, req.ServiceID)

	return &Response{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Staff:     staff,
		Days:      days,
	}, nil
}

// resolveDay вычисляет доступность одного дня.
// Возвращает nil без ошибки, если в этот день свободных слотов нет.
func (uc *UseCase) resolveDay(
	ctx context.Context,
	req *Request,
	windows []*domain.WorkingHourWindow,
	date time.Time,
	now time.Time,
) (*DaySchedule, error) {
	weekday := int(date.Weekday())

	// Окна этого дня недели, покрывающие услугу
	candidates := make(map[int64][]types.TimeString)

	for _, window := range windows {
		if !window.AppliesToWeekday(weekday) || !window.CoversService(req.ServiceID) {
			continue
		}

		slots, err := generateWindowSlots(
			window.OpenTime,
			window.CloseTime,
			uc.config.SlotDurationMinutes,
			date,
			now,
			true,
		)
		if err != nil {
			uc.logger.Error("FindAvailability: failed to generate slots for window id=%d: %v", window.ID, err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		if len(slots) == 0 {
			continue
		}

		for _, staffID := range window.StaffIDs {
			if req.StaffID != nil && staffID != *req.StaffID {
				continue
			}
			candidates[staffID] = mergeSlots(candidates[staffID], slots)
		}
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	// Занятость всех мастеров дня одним batched-запросом
	staffIDs := make([]int64, 0, len(candidates))
	for staffID := range candidates {
		staffIDs = append(staffIDs, staffID)
	}

	filter := domain.AppointmentsFilter{
		StaffIDs:        staffIDs,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false, // Неактивные записи слоты не блокируют
	}

	appointments, err := uc.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("FindAvailability: failed to list appointments for %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	occupied := groupByStaff(appointments)

	day := DaySchedule{
		Date:         date,
		SlotsByStaff: make(map[int64][]types.TimeString, len(candidates)),
	}

	for staffID, slots := range candidates {
		free := subtractOccupied(slots, uc.config.SlotDurationMinutes, occupied[staffID])
		if len(free) == 0 {
			// Мастера без свободных слотов в день не попадают
			continue
		}
		day.SlotsByStaff[staffID] = free
	}

	if !hasAvailability(day.SlotsByStaff) {
		return nil, nil
	}

	return &day, nil
}

// loadStaffSummaries получает сводки мастеров и оставляет от имени первое слово
func (uc *UseCase) loadStaffSummaries(ctx context.Context, salonID int64, idSet map[int64]struct{}) ([]StaffSummary, error) {
	if len(idSet) == 0 {
		return []StaffSummary{}, nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	members, err := uc.salonClient.GetStaffMembers(ctx, salonID, ids)
	if err != nil {
		uc.logger.Error("FindAvailability: failed to get staff members: %v", err)
		return nil, fmt.Errorf("%w: failed to get staff members: %v", ErrInternal, err)
	}

	summaries := make([]StaffSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, StaffSummary{
			ID:        m.ID,
			FirstName: firstNameToken(m.DisplayName),
			Photo:     m.Photo,
		})
	}

	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })

	return summaries, nil
}

// firstNameToken возвращает первое слово отображаемого имени
func firstNameToken(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func hasAvailability(slotsByStaff map[int64][]types.TimeString) bool {
	for _, slots := range slotsByStaff {
		if len(slots) > 0 {
			return true
		}
	}
	return false
}
