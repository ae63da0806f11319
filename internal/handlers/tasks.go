package handlers

import (
	"net/http"

	dom "storefront/internal/domain"
	"storefront/internal/dto"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc       TaskService
	generator TaskGenerator
}

func NewTaskHandler(svc TaskService, generator TaskGenerator) *TaskHandler {
	return &TaskHandler{svc: svc, generator: generator}
}

// List godoc
// @Summary      List back-office tasks
// @Tags         admin-tasks
// @Produce      json
// @Security     CookieAuth
// @Param        status  query     string  false  "open or done"
// @Param        kind    query     string  false  "Task kind"
// @Param        limit   query     int     false  "Page size"
// @Param        offset  query     int     false  "Page offset"
// @Success      200  {object}  dto.ListTasksResponse
// @Failure      400  {object}  map[string]string
// @Router       /admin/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	limit, offset := parsePage(c)
	list, err := h.svc.List(c.Request.Context(), dom.TaskFilter{
		Kind:   dom.TaskKind(c.Query("kind")),
		Status: dom.TaskStatus(c.Query("status")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	items := make([]dto.TaskResponse, len(list))
	for i, t := range list {
		items[i] = taskToResponse(t)
	}
	c.JSON(http.StatusOK, dto.ListTasksResponse{Items: items})
}

// Complete godoc
// @Summary      Mark a task done
// @Tags         admin-tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  dto.TaskResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Complete(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Generate godoc
// @Summary      Run the task rules now
// @Tags         admin-tasks
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.GenerateTasksResponse
// @Router       /admin/tasks/generate [post]
func (h *TaskHandler) Generate(c *gin.Context) {
	report, err := h.generator.Run(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, reportToResponse(report))
}
