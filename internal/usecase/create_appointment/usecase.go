package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	clientSvc "github.com/m04kA/SBS-SalonService/internal/integrations/clientservice"
	salonSvc "github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
)

// UseCase use case для создания записи.
// Разрешение доступности (read path) - только подсказка клиенту: к моменту
// коммита слот мог занять кто-то другой, поэтому конфликт перепроверяется
// здесь, внутри сериализуемой транзакции с блокировкой строк дня.
type UseCase struct {
	appointmentRepo AppointmentRepository
	salonClient     SalonServiceClient
	clientClient    ClientServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	salonClient SalonServiceClient,
	clientClient ClientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		salonClient:     salonClient,
		clientClient:    clientClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, salon=%d, service=%d, staff=%d, date=%s, time=%s",
		req.ClientID, req.SalonID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время и отклоняем прошедшее.
	// Дата запроса парсится как UTC-полночь, поэтому часы приводим к UTC,
	// иначе около местной полуночи сравнение дней съезжает на сутки
	now := uc.timeProvider.Now().In(time.UTC)
	if err := validateStartNotInPast(req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: start time validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем клиента
	if _, err := uc.clientClient.GetClient(ctx, req.ClientID); err != nil {
		if errors.Is(err, clientSvc.ErrClientNotFound) {
			uc.logger.Warn("CreateAppointment: client id=%d not found", req.ClientID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}

	// 4. Получаем салон
	if _, err := uc.salonClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonSvc.ErrSalonNotFound) {
			uc.logger.Warn("CreateAppointment: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 5. Получаем основную услугу
	service, err := uc.getBookableService(ctx, req.SalonID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 6. Получаем дополнительные услуги; длительность и цена суммируются
	durationMinutes := service.DurationMinutes
	priceTotal := service.Price

	for _, extraID := range req.ExtraServiceIDs {
		extra, err := uc.getBookableService(ctx, req.SalonID, extraID)
		if err != nil {
			return nil, err
		}
		durationMinutes += extra.DurationMinutes
		priceTotal += extra.Price
	}

	// 7. Проверяем, что мастер существует в салоне
	members, err := uc.salonClient.GetStaffMembers(ctx, req.SalonID, []int64{req.StaffID})
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get staff member id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}
	if len(members) == 0 {
		uc.logger.Warn("CreateAppointment: staff id=%d not found in salon id=%d", req.StaffID, req.SalonID)
		return nil, ErrStaffNotFound
	}

	// Переменная для хранения результата
	var result *domain.Appointment

	// 8. Проверка конфликта и вставка атомарны в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Все активные записи мастера на эту дату с блокировкой (FOR UPDATE)
		filter := domain.AppointmentsFilter{
			StaffIDs:        []int64{req.StaffID},
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Только активные записи
		}

		appointments, err := uc.appointmentRepo.ListWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечение интервала [start, start+duration)
		conflict, err := hasOverlap(req.StartTime, durationMinutes, appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check overlap: %v", err)
			return fmt.Errorf("%w: failed to check overlap: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateAppointment: slot %s conflicts for staff id=%d on %s",
				req.StartTime, req.StaffID, req.Date.Format(domain.DateFormat))
			return ErrTimeSlotConflict
		}

		// 8.3. Создаем запись с денормализацией данных услуг
		appointment := &domain.Appointment{
			SalonID:         req.SalonID,
			ClientID:        req.ClientID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			ExtraServiceIDs: req.ExtraServiceIDs,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusActive,
			// Денормализация данных услуг
			ServiceName: service.Name,
			PriceTotal:  priceTotal,
			// Заметки
			Notes: req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		SalonID:         result.SalonID,
		ClientID:        result.ClientID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		ExtraServiceIDs: result.ExtraServiceIDs,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		PriceTotal:      result.PriceTotal,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getBookableService получает услугу и проверяет, что она доступна для записи
func (uc *UseCase) getBookableService(ctx context.Context, salonID, serviceID int64) (*salonSvc.Service, error) {
	service, err := uc.salonClient.GetService(ctx, salonID, serviceID)
	if err != nil {
		if errors.Is(err, salonSvc.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable() {
		uc.logger.Warn("CreateAppointment: service id=%d is not bookable (status=%s)", serviceID, service.Status)
		return nil, ErrServiceUnavailable
	}

	return service, nil
}
