package list_schedule_windows

import (
	"context"

	"github.com/m04kA/SBS-SalonService/internal/service/schedule/models"
)

type ScheduleService interface {
	ListBySalon(ctx context.Context, salonID int64) (*models.WindowListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
