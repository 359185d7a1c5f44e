package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-task-tracker/internal/models"
	"github.com/adanyl0v/go-task-tracker/internal/services"
)

type getTaskResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		Date:        task.Date,
		CreatedAt:   task.CreatedAt,
	}
}

type getTasksResponse struct {
	Tasks []getTaskResponse `json:"tasks"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}

// createTaskRequest has no owner field. The owner always comes from the
// authenticated identity.
type createTaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(services.ErrNoToken.Error()))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := getStringFromContext(c, userIDCtxKey)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(services.ErrNoToken.Error()))
		return
	}

	// Malformed numbers become 0, which selects the default.
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))

	result, err := h.tasks.ListTasks(c, services.ListTasksParams{
		UserID: userID,
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		abort(c, newServiceError(err))
		return
	}

	response := getTasksResponse{
		Tasks: make([]getTaskResponse, len(result.Tasks)),
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
	}
	for i, task := range result.Tasks {
		response.Tasks[i] = newGetTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}
