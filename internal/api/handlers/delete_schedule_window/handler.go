package delete_schedule_window

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SBS-SalonService/internal/api/handlers"
	"github.com/m04kA/SBS-SalonService/internal/api/middleware"
	"github.com/m04kA/SBS-SalonService/internal/service/schedule"
)

const (
	msgInvalidWindowID = "некорректный ID окна расписания"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgWindowNotFound  = "окно расписания не найдено"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/schedule-windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем windowId из URL
	vars := mux.Vars(r)
	windowID, err := strconv.ParseInt(vars["windowId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /schedule-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /schedule-windows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем окно (сервис сам проверит права менеджера).
	// Уже созданные записи при этом не отменяются.
	if err := h.service.Delete(r.Context(), windowID, userID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrWindowNotFound):
			h.logger.Warn("DELETE /schedule-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgWindowNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /schedule-windows/{id} - Access denied: window_id=%d, user_id=%d", windowID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /schedule-windows/{id} - Failed to delete window: window_id=%d, error=%v",
				windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /schedule-windows/{id} - Window deleted successfully: window_id=%d", windowID)
	w.WriteHeader(http.StatusNoContent)
}
