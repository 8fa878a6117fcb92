package clients

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/auth"
	"vowboard.io/planner-gateway/app/domain/client"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/interfaces/http/responses"
	"vowboard.io/planner-gateway/app/utils/functional"
)

const ClientIDParam = "client_id"

type ClientsRoute struct {
	authService   *auth.AuthService
	clientService *client.ClientService
}

func NewClientsRoute(authService *auth.AuthService, clientService *client.ClientService) *ClientsRoute {
	return &ClientsRoute{authService, clientService}
}

// RegisterRouter mounts the client directory. Every route runs through the
// elevated procedures, so the group is organizer only.
func (r *ClientsRoute) RegisterRouter(router gin.IRouter) {
	clientsRouter := router.Group("/clients",
		r.authService.JWTAuthMiddleware(),
		r.authService.RegisteredUserMiddleware(),
		r.authService.OrganizerOnlyMiddleware(),
	)
	clientsRouter.GET("", r.list)
	clientsRouter.POST("", r.create)
	clientsRouter.GET("/:"+ClientIDParam, r.get)
	clientsRouter.PATCH("/:"+ClientIDParam, r.update)
	clientsRouter.DELETE("/:"+ClientIDParam, r.delete)
}

type ClientResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	PartnerName *string   `json:"partner_name"`
	UserID      *string   `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		Email:       c.Email,
		Phone:       c.Phone,
		PartnerName: c.PartnerName,
		UserID:      c.UserID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type CreateClientRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       *string `json:"phone"`
	PartnerName *string `json:"partner_name"`
}

type UpdateClientRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	PartnerName *string `json:"partner_name"`
}

// @Summary List clients
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} responses.ListResponse[ClientResponse]
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 403 {object} responses.ErrorResponse "Organizer only"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/clients [get]
func (r *ClientsRoute) list(reqCtx *gin.Context) {
	clients, err := r.clientService.List(reqCtx.Request.Context())
	if err != nil {
		helpers.AbortWithError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c001", err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.NewListResponse(functional.Map(clients, NewClientResponse)))
}

// @Summary Get a client
// @Tags Clients
// @Security BearerAuth
// @Produce json
// @Param client_id path string true "Client ID"
// @Success 200 {object} ClientResponse
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 404 {object} responses.ErrorResponse "Client not found"
// @Router /v1/clients/{client_id} [get]
func (r *ClientsRoute) get(reqCtx *gin.Context) {
	c, err := r.clientService.FindByID(reqCtx.Request.Context(), reqCtx.Param(ClientIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c002", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewClientResponse(c))
}

// @Summary Create a client
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateClientRequest true "Request body"
// @Success 201 {object} ClientResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/clients [post]
func (r *ClientsRoute) create(reqCtx *gin.Context) {
	var request CreateClientRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c003", err)
		return
	}
	c, err := r.clientService.Create(reqCtx.Request.Context(), &client.Client{
		FullName:    request.FullName,
		Email:       request.Email,
		Phone:       request.Phone,
		PartnerName: request.PartnerName,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c004", err)
		return
	}
	reqCtx.JSON(http.StatusCreated, NewClientResponse(c))
}

// @Summary Update a client
// @Tags Clients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param client_id path string true "Client ID"
// @Param request body UpdateClientRequest true "Request body"
// @Success 200 {object} ClientResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 404 {object} responses.ErrorResponse "Client not found"
// @Router /v1/clients/{client_id} [patch]
func (r *ClientsRoute) update(reqCtx *gin.Context) {
	var request UpdateClientRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c005", err)
		return
	}
	c, err := r.clientService.Update(reqCtx.Request.Context(), reqCtx.Param(ClientIDParam), client.ClientPatch{
		FullName:    request.FullName,
		Email:       request.Email,
		Phone:       request.Phone,
		PartnerName: request.PartnerName,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c006", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewClientResponse(c))
}

// @Summary Delete a client
// @Tags Clients
// @Security BearerAuth
// @Param client_id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 401 {object} responses.ErrorResponse "Unauthorized"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/clients/{client_id} [delete]
func (r *ClientsRoute) delete(reqCtx *gin.Context) {
	if err := r.clientService.Delete(reqCtx.Request.Context(), reqCtx.Param(ClientIDParam)); err != nil {
		helpers.AbortWithError(reqCtx, "0f7f5f0e-2c2b-4d1b-9a3e-52b0e2d5c007", err)
		return
	}
	reqCtx.Status(http.StatusNoContent)
}
