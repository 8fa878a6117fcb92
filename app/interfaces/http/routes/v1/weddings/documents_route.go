package weddings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vowboard.io/planner-gateway/app/domain/document"
	"vowboard.io/planner-gateway/app/interfaces/http/helpers"
	"vowboard.io/planner-gateway/app/utils/functional"
)

const DocumentIDParam = "document_id"

func (r *WeddingsRoute) registerDocumentRoutes(documentsRouter *gin.RouterGroup) {
	documentsRouter.GET("", r.listDocuments)
	documentsRouter.POST("", r.createDocument)
	documentsRouter.POST("/reorder", r.reorderDocuments)
	documentsRouter.GET("/:"+DocumentIDParam, r.getDocument)
	documentsRouter.PATCH("/:"+DocumentIDParam, r.updateDocument)
	documentsRouter.DELETE("/:"+DocumentIDParam, r.deleteDocument)
	documentsRouter.POST("/:"+DocumentIDParam+"/pin", r.toggleDocumentPin)
	documentsRouter.GET("/:"+DocumentIDParam+"/download", r.downloadDocument)
}

type DocumentResponse struct {
	ID          string    `json:"id"`
	WeddingID   string    `json:"wedding_id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	DownloadURL string    `json:"download_url"`
	Category    *string   `json:"category"`
	Pinned      bool      `json:"pinned"`
	Order       *int      `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewDocumentResponse(d *document.Document) *DocumentResponse {
	return &DocumentResponse{
		ID:          d.ID,
		WeddingID:   d.WeddingID,
		Name:        d.Name,
		URL:         d.URL,
		DownloadURL: d.DownloadURL(),
		Category:    d.Category,
		Pinned:      d.Pinned,
		Order:       d.Order,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type DocumentBoardResponse struct {
	Changed  *bool               `json:"changed,omitempty"`
	Outcome  string              `json:"outcome,omitempty"`
	Pinned   []*DocumentResponse `json:"pinned"`
	Unpinned []*DocumentResponse `json:"unpinned"`
}

type CreateDocumentRequest struct {
	Name     string  `json:"name" binding:"required"`
	URL      string  `json:"url" binding:"required,url"`
	Category *string `json:"category"`
}

type UpdateDocumentRequest struct {
	Name     *string `json:"name"`
	URL      *string `json:"url" binding:"omitempty,url"`
	Category *string `json:"category"`
}

type ReorderDocumentsRequest struct {
	DraggedID string `json:"dragged_id" binding:"required"`
	TargetID  string `json:"target_id"`
	Pinned    bool   `json:"pinned"`
}

func (r *WeddingsRoute) documentBoard(reqCtx *gin.Context) (*DocumentBoardResponse, bool) {
	b, err := r.documentService.Documents(reqCtx.Request.Context(), getWedding(reqCtx).ID)
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a01", err)
		return nil, false
	}
	return &DocumentBoardResponse{
		Pinned:   functional.Map(b.Pinned, NewDocumentResponse),
		Unpinned: functional.Map(b.Unpinned, NewDocumentResponse),
	}, true
}

// @Summary List documents, pinned first
// @Tags Documents
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Success 200 {object} DocumentBoardResponse
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/documents [get]
func (r *WeddingsRoute) listDocuments(reqCtx *gin.Context) {
	resp, ok := r.documentBoard(reqCtx)
	if !ok {
		return
	}
	reqCtx.JSON(http.StatusOK, resp)
}

// @Summary Get a document
// @Tags Documents
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param document_id path string true "Document ID"
// @Success 200 {object} DocumentResponse
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Document not found"
// @Router /v1/weddings/{wedding_id}/documents/{document_id} [get]
func (r *WeddingsRoute) getDocument(reqCtx *gin.Context) {
	d, err := r.documentService.FindByID(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(DocumentIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a02", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewDocumentResponse(d))
}

// downloadDocument redirects to the direct-download form of the link.
// @Summary Download a document
// @Tags Documents
// @Security BearerAuth
// @Param wedding_id path string true "Wedding ID"
// @Param document_id path string true "Document ID"
// @Success 302 "Redirect to the direct-download link"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Document not found"
// @Router /v1/weddings/{wedding_id}/documents/{document_id}/download [get]
func (r *WeddingsRoute) downloadDocument(reqCtx *gin.Context) {
	d, err := r.documentService.FindByID(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(DocumentIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a03", err)
		return
	}
	reqCtx.Redirect(http.StatusFound, d.DownloadURL())
}

// @Summary Add a document link
// @Tags Documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body CreateDocumentRequest true "Request body"
// @Success 201 {object} DocumentResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/documents [post]
func (r *WeddingsRoute) createDocument(reqCtx *gin.Context) {
	var request CreateDocumentRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a04", err)
		return
	}
	d, err := r.documentService.Create(reqCtx.Request.Context(), &document.Document{
		WeddingID: getWedding(reqCtx).ID,
		Name:      request.Name,
		URL:       request.URL,
		Category:  request.Category,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a05", err)
		return
	}
	reqCtx.JSON(http.StatusCreated, NewDocumentResponse(d))
}

// @Summary Update a document
// @Tags Documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param document_id path string true "Document ID"
// @Param request body UpdateDocumentRequest true "Request body"
// @Success 200 {object} DocumentResponse
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Document not found"
// @Router /v1/weddings/{wedding_id}/documents/{document_id} [patch]
func (r *WeddingsRoute) updateDocument(reqCtx *gin.Context) {
	var request UpdateDocumentRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a06", err)
		return
	}
	d, err := r.documentService.Update(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(DocumentIDParam), document.DocumentPatch{
		Name:     request.Name,
		URL:      request.URL,
		Category: request.Category,
	})
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a07", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewDocumentResponse(d))
}

// @Summary Delete a document
// @Tags Documents
// @Security BearerAuth
// @Param wedding_id path string true "Wedding ID"
// @Param document_id path string true "Document ID"
// @Success 204 "No Content"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Document not found"
// @Router /v1/weddings/{wedding_id}/documents/{document_id} [delete]
func (r *WeddingsRoute) deleteDocument(reqCtx *gin.Context) {
	if err := r.documentService.Delete(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(DocumentIDParam)); err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a08", err)
		return
	}
	reqCtx.Status(http.StatusNoContent)
}

// @Summary Pin or unpin a document
// @Tags Documents
// @Security BearerAuth
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param document_id path string true "Document ID"
// @Success 200 {object} DocumentResponse
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Document not found"
// @Failure 502 {object} responses.ErrorResponse "Backend request failed"
// @Router /v1/weddings/{wedding_id}/documents/{document_id}/pin [post]
func (r *WeddingsRoute) toggleDocumentPin(reqCtx *gin.Context) {
	d, err := r.documentService.TogglePin(reqCtx.Request.Context(), getWedding(reqCtx).ID, reqCtx.Param(DocumentIDParam))
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a09", err)
		return
	}
	reqCtx.JSON(http.StatusOK, NewDocumentResponse(d))
}

// @Summary Drop a document onto another
// @Tags Documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param wedding_id path string true "Wedding ID"
// @Param request body ReorderDocumentsRequest true "Request body"
// @Success 200 {object} DocumentBoardResponse "outcome is applied, degraded or failed"
// @Failure 400 {object} responses.ValidationErrorResponse "Invalid request body"
// @Failure 403 {object} responses.ErrorResponse "Wedding not accessible"
// @Failure 404 {object} responses.ErrorResponse "Document not found"
// @Failure 409 {object} responses.ErrorResponse "Another drag is in progress for this caller"
// @Router /v1/weddings/{wedding_id}/documents/reorder [post]
func (r *WeddingsRoute) reorderDocuments(reqCtx *gin.Context) {
	var request ReorderDocumentsRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		helpers.AbortWithBindError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a0a", err)
		return
	}
	result, err := r.documentService.Reorder(reqCtx.Request.Context(), getWedding(reqCtx).ID, viewerID(reqCtx), request.DraggedID, request.TargetID, request.Pinned)
	if err != nil {
		helpers.AbortWithError(reqCtx, "b7d3e5a1-4c2f-4e9a-a1b8-6f0d2c9e4a0b", err)
		return
	}
	resp, ok := r.documentBoard(reqCtx)
	if !ok {
		return
	}
	resp.Changed = &result.Changed
	resp.Outcome = result.Outcome.String()
	reqCtx.JSON(http.StatusOK, resp)
}
