package weddings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/board"
	"vowboard.io/planner-gateway/app/domain/task"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
	"vowboard.io/planner-gateway/app/utils/functional"
)

const TaskIDParam = "task_id"

func (r *WeddingsRoute) registerTaskRoutes(tasksRouter *gin.RouterGroup) {
	tasksRouter.GET("", r.listTasks)
	tasksRouter.POST("", r.createTask)
	tasksRouter.POST("/reload", r.reloadTasks)
	tasksRouter.POST("/reorder", r.reorderTasks)
	tasksRouter.GET("/:"+TaskIDParam, r.getTask)
	tasksRouter.PATCH("/:"+TaskIDParam, r.updateTask)
	tasksRouter.DELETE("/:"+TaskIDParam, r.deleteTask)
	tasksRouter.POST("/:"+TaskIDParam+"/toggle", r.toggleTask)
	tasksRouter.POST("/:"+TaskIDParam+"/move", r.moveTask)
}

type TaskResponse struct {
	ID          string            `json:"id"`
	WeddingID   string            `json:"wedding_id"`
	TaskGroupID *string           `json:"task_group_id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      task.TaskStatus   `json:"status"`
	Priority    task.TaskPriority `json:"priority"`
	DueDate     *string           `json:"due_date"`
	Order       *int              `json:"order"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewTaskResponse(t *task.Task) *TaskResponse {
	return &TaskResponse{
		ID:          t.ID,
		WeddingID:   t.WeddingID,
		TaskGroupID: t.TaskGroupID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Order:       t.Order,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

type CreateTaskRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description *string           `json:"description"`
	TaskGroupID *string           `json:"task_group_id"`
	Priority    task.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string           `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Priority    *task.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *string            `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
	Status      *task.TaskStatus   `json:"status" binding:"omitempty,oneof=pending completed"`
}

type ReorderTasksRequest struct {
	DraggedID   string  `json:"dragged_id" binding:"required"`
	TargetID    string  `json:"target_id"`
	TaskGroupID *string `json:"task_group_id"`
}

type MoveTaskRequest struct {
	TaskGroupID *string `json:"task_group_id"`
}

// BoardResponse reports how a reorder was persisted together with the
// board as it now stands.
type BoardResponse[T any] struct {
	Changed bool   `json:"changed"`
	Outcome string `json:"outcome"`
	Items   []T    `json:"items"`
}

func newBoardResponse[T any](result board.Result, items []T) BoardResponse[T] {
	if items == nil {
		items = []T{}
	}
	return BoardResponse[T]{Changed: result.Changed, Outcome: result.Outcome.String(), Items: items}
}

// @Summary List the task board
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Success 200 {object} responses.ListResponse[TaskResponse]
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/tasks [get]
func (r *WeddingsRoute) listTasks(reqCtx *gin.Context) {
	tasks, err := r.boardService.Tasks(reqCtx.Request.Context(), getWedding(reqCtx).ID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f01", err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(tasks, NewTaskResponse)))
}

// @Summary Reload the task board from the backend
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Success 200 {object} responses.ListResponse[TaskResponse]
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/tasks/reload [post]
func (r *WeddingsRoute) reloadTasks(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()
	weddingID := getWedding(reqCtx).ID
	r.boardService.InvalidateWedding(weddingID)
	if err := r.boardService.Reload(ctx, weddingID); err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f02", err)
		return
	}
	r.listTasks(reqCtx)
}

// @Summary Get a task
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param task_id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Router /v1/weddings/{wedding_id}/tasks/{task_id} [get]
func (r *WeddingsRoute) getTask(reqCtx *gin.Context) {
	t, err := r.taskService.FindByID(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f03", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewTaskResponse(t))
}

// @Summary Create a task
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body CreateTaskRequest true "Request body"
// @Success 201 {object} TaskResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/tasks [post]
func (r *WeddingsRoute) createTask(reqCtx *gin.Context) {
	var request CreateTaskRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f04", err)
		return
	}
	t, err := r.taskService.Create(reqCtx.Request.Context(), &task.Task{
		WeddingID:   getWedding(reqCtx).ID,
		TaskGroupID: request.TaskGroupID,
		Title:       request.Title,
		Description: request.Description,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f05", err)
		return
	}
	reqCtx.JSON(http.StatusCreated, NewTaskResponse(t))
}

// @Summary Update a task
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param task_id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Request body"
// @Success 200 {object} TaskResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Router /v1/weddings/{wedding_id}/tasks/{task_id} [patch]
func (r *WeddingsRoute) updateTask(reqCtx *gin.Context) {
	var request UpdateTaskRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f06", err)
		return
	}
	t, err := r.taskService.Update(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskIDParam), task.TaskPatch{
		Title:       request.Title,
		Description: request.Description,
		Priority:    request.Priority,
		DueDate:     request.DueDate,
		Status:      request.Status,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f07", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewTaskResponse(t))
}

// @Summary Delete a task
// @Tags Tasks
// @Security BearerAuth
// @Param wedding_id path string true "Wedding ID"
// @Param task_id path string true "Task ID"
// @Success 204 "No Content"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Router /v1/weddings/{wedding_id}/tasks/{task_id} [delete]
func (r *WeddingsRoute) deleteTask(reqCtx *gin.Context) {
	if err := r.taskService.Delete(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskIDParam)); err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f08", err)
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// @Summary Toggle a task between pending and completed
// @Tags Tasks
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param task_id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/tasks/{task_id}/toggle [post]
func (r *WeddingsRoute) toggleTask(reqCtx *gin.Context) {
	t, err := r.boardService.ToggleStatus(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f09", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewTaskResponse(t))
}

// @Summary Drop a task onto another
// @Description Reorders within the target lane, or moves the task into it when the lane differs.
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body ReorderTasksRequest true "Dragged task, drop target and lane"
// @Success 200 {object} BoardResponse[TaskResponse] "outcome is applied, degraded or failed"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Failure 409 {object} responses.ErrorResponse "Another drag is in progress for this caller"
// @Router /v1/weddings/{wedding_id}/tasks/reorder [post]
func (r *WeddingsRoute) reorderTasks(reqCtx *gin.Context) {
	var request ReorderTasksRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f0a", err)
		return
	}
	group := ""
	if request.TaskGroupID != nil {
		group = *request.TaskGroupID
	}
	ctx := reqCtx.Request.Context()
	weddingID := getWedding(reqCtx).ID
	result, err := r.boardService.Reorder(ctx, weddingID, viewerID(reqCtx), request.DraggedID, request.TargetID, group)
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f0b", err)
		return
	}
	r.respondWithTaskBoard(reqCtx, result)
}

// @Summary Move a task to another group
// @Tags Tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param task_id path string true "Task ID"
// @Param request body MoveTaskRequest true "Target group, null for ungrouped"
// @Success 200 {object} BoardResponse[TaskResponse] "changed is false when the task is already in the group"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task not found"
// @Router /v1/weddings/{wedding_id}/tasks/{task_id}/move [post]
func (r *WeddingsRoute) moveTask(reqCtx *gin.Context) {
	var request MoveTaskRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f0c", err)
		return
	}
	result, err := r.boardService.MoveToGroup(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskIDParam), request.TaskGroupID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f0d", err)
		return
	}
	r.respondWithTaskBoard(reqCtx, result)
}

func (r *WeddingsRoute) respondWithTaskBoard(reqCtx *gin.Context, result board.Result) {
	tasks, err := r.boardService.Tasks(reqCtx.Request.Context(), getWedding(reqCtx).ID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "8a6f2e10-6b9d-4c1e-9d57-0c4e3a2b1f0e", err)
		return
	}
	reqCtx.JSON(http.StatusOK, newBoardResponse(result, functional.Map(tasks, NewTaskResponse)))
}
