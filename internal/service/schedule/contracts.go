package schedule

import (
	"context"

	"github.com/m04kA/SBS-SalonService/internal/domain"
	"github.com/m04kA/SBS-SalonService/internal/integrations/salonservice"
)

// ScheduleRepository интерфейс репозитория окон рабочих часов
type ScheduleRepository interface {
	Create(ctx context.Context, window *domain.WorkingHourWindow) (*domain.WorkingHourWindow, error)
	GetByID(ctx context.Context, id int64) (*domain.WorkingHourWindow, error)
	ListBySalon(ctx context.Context, salonID int64) ([]*domain.WorkingHourWindow, error)
	Delete(ctx context.Context, id int64) error
}

// SalonServiceClient интерфейс клиента справочного сервиса салонов
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
