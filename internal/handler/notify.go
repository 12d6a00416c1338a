package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajnahall/studyhall-admin/internal/queue"
	"github.com/prajnahall/studyhall-admin/internal/repository"
	queue_publisher "github.com/prajnahall/studyhall-admin/internal/service"
)

// NotifyHandler collects phone numbers for the selected students and
// publishes a notify event. The consumer only logs the request; no message
// leaves the system.
type NotifyHandler struct {
	Students *repository.StudentRepo
}

func NewNotifyHandler(students *repository.StudentRepo) *NotifyHandler {
	if students == nil {
		panic("nil repository passed to NewNotifyHandler")
	}
	return &NotifyHandler{Students: students}
}

type notifyReq struct {
	Message    string   `json:"message" validate:"required"`
	StudentIDs []string `json:"student_ids" validate:"required,min=1"`
}

func (h *NotifyHandler) Send(c echo.Context) error {
	var req notifyReq
	if msg := bindAndValidate(c, &req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	op := currentOperator(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	wanted := make(map[string]bool, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		wanted[id] = true
	}
	students, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list students failed"})
	}
	phones := make([]string, 0, len(req.StudentIDs))
	for _, s := range students {
		if wanted[s.ID] && s.Phone != "" {
			phones = append(phones, s.Phone)
		}
	}
	if len(phones) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no reachable students selected"})
	}

	if err := queue_publisher.PublishNotifyRequested(ctx, queue.NotifyRequestedEvent{
		Message:     req.Message,
		Phones:      phones,
		RequestedBy: op.Name,
		HallCode:    op.HallCode,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "publish failed"})
	}
	return c.JSON(http.StatusAccepted, echo.Map{"queued": len(phones)})
}
