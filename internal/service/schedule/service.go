package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	scheduleRepo "github.com/m04kA/SBS-SalonService/internal/infra/storage/schedule"
	salonClient "github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
	"github.com/m04kA/SBS-SalonService/internal/service/schedule/models"
	"github.com/m04kA/SBS-SalonService/pkg/types"
)

// Service сервис для работы с окнами рабочих часов
type Service struct {
	scheduleRepo ScheduleRepository
	salonClient  SalonServiceClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		salonClient:  salonClient,
		logger:       logger,
	}
}

// Create создает новое окно рабочих часов
// Доступно только менеджерам салона
func (s *Service) Create(ctx context.Context, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: creating window for salon=%d, weekdays=%v by user=%d",
		req.SalonID, req.Weekdays, req.UserID)

	// 1. Валидируем входные данные
	if err := validateWindowData(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Создаем окно
	createdWindow, err := s.scheduleRepo.Create(ctx, req.ToDomainWindow())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created window id=%d", createdWindow.ID)
	return models.FromDomainWindow(createdWindow), nil
}

// ListBySalon получает все окна рабочих часов салона
// Публичный метод - доступен всем
func (s *Service) ListBySalon(ctx context.Context, salonID int64) (*models.WindowListResponse, error) {
	s.logger.Info("ListBySalon: fetching windows for salon=%d", salonID)

	windows, err := s.scheduleRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("ListBySalon: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListBySalon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBySalon: successfully fetched %d windows for salon=%d", len(windows), salonID)
	return models.FromDomainWindowList(windows), nil
}

// Delete удаляет окно рабочих часов (hard delete)
// Слоты окна просто перестают предлагаться; уже созданные записи не затрагиваются.
// Доступно только менеджерам салона
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("Delete: deleting window id=%d by user=%d", id, userID)

	// 1. Получаем окно для проверки прав доступа
	window, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found", id)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер салона)
	if err := s.checkManagerAccess(ctx, window.SalonID, userID); err != nil {
		return err
	}

	// 3. Удаляем окно
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrWindowNotFound) {
			s.logger.Warn("Delete: window id=%d not found during deletion", id)
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted window id=%d", id)
	return nil
}

// Вспомогательные методы

// checkManagerAccess проверяет, что пользователь является менеджером салона
func (s *Service) checkManagerAccess(ctx context.Context, salonID int64, userID int64) error {
	salon, err := s.salonClient.GetSalon(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("checkManagerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get salon: %v", ErrInternal, err)
	}

	for _, managerID := range salon.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of salon=%d", userID, salonID)
	return ErrAccessDenied
}

// validateWindowData валидирует параметры окна рабочих часов
func validateWindowData(req *models.CreateWindowRequest) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonId must be positive", ErrInvalidInput)
	}

	if len(req.Weekdays) == 0 {
		return fmt.Errorf("%w: at least one weekday is required", ErrInvalidInput)
	}
	seen := make(map[int]struct{}, len(req.Weekdays))
	for _, weekday := range req.Weekdays {
		if weekday < domain.MinWeekday || weekday > domain.MaxWeekday {
			return fmt.Errorf("%w: weekday must be between %d and %d", ErrInvalidInput, domain.MinWeekday, domain.MaxWeekday)
		}
		if _, ok := seen[weekday]; ok {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, weekday)
		}
		seen[weekday] = struct{}{}
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceId is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
		}
	}

	if len(req.StaffIDs) == 0 {
		return fmt.Errorf("%w: at least one staffId is required", ErrInvalidInput)
	}
	for _, id := range req.StaffIDs {
		if id <= 0 {
			return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
		}
	}

	openTime := types.TimeString(req.OpenTime)
	closeTime := types.TimeString(req.CloseTime)

	if err := openTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime format: %v", ErrInvalidInput, err)
	}
	if err := closeTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime format: %v", ErrInvalidInput, err)
	}

	// Инвариант окна: открытие строго раньше закрытия
	if !openTime.IsBefore(closeTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	return nil
}
