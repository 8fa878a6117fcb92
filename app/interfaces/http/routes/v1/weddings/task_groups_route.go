package weddings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/board"
	"vowboard.io/planner-gateway/app/domain/taskgroup"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
	"vowboard.io/planner-gateway/app/utils/functional"
)

const TaskGroupIDParam = "task_group_id"

func (r *WeddingsRoute) registerTaskGroupRoutes(groupsRouter *gin.RouterGroup) {
	groupsRouter.GET("", r.listTaskGroups)
	groupsRouter.POST("", r.createTaskGroup)
	groupsRouter.POST("/reorder", r.reorderTaskGroups)
	groupsRouter.PATCH("/:"+TaskGroupIDParam, r.renameTaskGroup)
	groupsRouter.DELETE("/:"+TaskGroupIDParam, r.deleteTaskGroup)
}

type TaskGroupResponse struct {
	ID        string    `json:"id"`
	WeddingID string    `json:"wedding_id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	Order     *int      `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func NewTaskGroupResponse(g *taskgroup.TaskGroup) *TaskGroupResponse {
	return &TaskGroupResponse{
		ID:        g.ID,
		WeddingID: g.WeddingID,
		Name:      g.Name,
		Color:     g.Color,
		Order:     g.Order,
		CreatedAt: g.CreatedAt,
	}
}

type CreateTaskGroupRequest struct {
	Name  string  `json:"name" binding:"required"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}

type RenameTaskGroupRequest struct {
	Name string `json:"name" binding:"required"`
}

type ReorderTaskGroupsRequest struct {
	DraggedID string `json:"dragged_id" binding:"required"`
	TargetID  string `json:"target_id"`
}

// @Summary List task groups
// @Tags TaskGroups
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Success 200 {object} responses.ListResponse[TaskGroupResponse]
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/task-groups [get]
func (r *WeddingsRoute) listTaskGroups(reqCtx *gin.Context) {
	groups, err := r.taskGroupService.Groups(reqCtx.Request.Context(), getWedding(reqCtx).ID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d01", err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(groups, NewTaskGroupResponse)))
}

// @Summary Create a task group
// @Tags TaskGroups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body CreateTaskGroupRequest true "Request body"
// @Success 201 {object} TaskGroupResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/task-groups [post]
func (r *WeddingsRoute) createTaskGroup(reqCtx *gin.Context) {
	var request CreateTaskGroupRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d02", err)
		return
	}
	g, err := r.taskGroupService.Create(reqCtx.Request.Context(), &taskgroup.TaskGroup{
		WeddingID: getWedding(reqCtx).ID,
		Name:      request.Name,
		Color:     request.Color,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d03", err)
		return
	}
	reqCtx.JSON(http.StatusCreated, NewTaskGroupResponse(g))
}

// @Summary Rename a task group
// @Tags TaskGroups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param task_group_id path string true "Task group ID"
// @Param request body RenameTaskGroupRequest true "Request body"
// @Success 200 {object} TaskGroupResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task group not found"
// @Router /v1/weddings/{wedding_id}/task-groups/{task_group_id} [patch]
func (r *WeddingsRoute) renameTaskGroup(reqCtx *gin.Context) {
	var request RenameTaskGroupRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d04", err)
		return
	}
	g, err := r.taskGroupService.Rename(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskGroupIDParam), request.Name)
	if err != nil {
		helpers.AbortWithError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d05", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewTaskGroupResponse(g))
}

// @Summary Delete a task group
// @Tags TaskGroups
// @Security BearerAuth
// @Param wedding_id path string true "Wedding ID"
// @Param task_group_id path string true "Task group ID"
// @Success 204 "No Content"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task group not found"
// @Router /v1/weddings/{wedding_id}/task-groups/{task_group_id} [delete]
func (r *WeddingsRoute) deleteTaskGroup(reqCtx *gin.Context) {
	if err := r.taskGroupService.Delete(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(TaskGroupIDParam)); err != nil {
		helpers.AbortWithError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d06", err)
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// @Summary Drop a task group onto another
// @Tags TaskGroups
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body ReorderTaskGroupsRequest true "Request body"
// @Success 200 {object} BoardResponse[TaskGroupResponse] "outcome is applied, degraded or failed"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Task group not found"
// @Failure 409 {object} responses.ErrorResponse "Another drag is in progress for this caller"
// @Router /v1/weddings/{wedding_id}/task-groups/reorder [post]
func (r *WeddingsRoute) reorderTaskGroups(reqCtx *gin.Context) {
	var request ReorderTaskGroupsRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d07", err)
		return
	}
	ctx := reqCtx.Request.Context()
	weddingID := getWedding(reqCtx).ID
	result, err := r.taskGroupService.Reorder(ctx, weddingID, viewerID(reqCtx), request.DraggedID, request.TargetID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d08", err)
		return
	}
	r.respondWithGroupBoard(reqCtx, result)
}

func (r *WeddingsRoute) respondWithGroupBoard(reqCtx *gin.Context, result board.Result) {
	groups, err := r.taskGroupService.Groups(reqCtx.Request.Context(), getWedding(reqCtx).ID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "3e9d1c77-0a2b-4f4e-8c6d-7b5a4f3e2d09", err)
		return
	}
	reqCtx.JSON(http.StatusOK, newBoardResponse(result, functional.Map(groups, NewTaskGroupResponse)))
}
