package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/1810649011/my-web-end/internal/auth"
	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/dto"
	"github.com/1810649011/my-web-end/internal/query"
	"github.com/1810649011/my-web-end/internal/service"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02 15:04:05"

// RecordHandler serves record CRUD for one storage variant. The owner
// comes from the auth middleware; on the unauthenticated relational
// routes it is empty and the repo ignores it.
type RecordHandler struct {
	svc *service.RecordService
}

// NewRecordHandler returns a new RecordHandler.
func NewRecordHandler(svc *service.RecordService) *RecordHandler {
	return &RecordHandler{svc: svc}
}

// Create godoc
// @Summary      Create a record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateRecordRequest  true  "Record body"
// @Success      201   {object}  dto.RecordResponse
// @Failure      400   {object}  map[string]string
// @Router       /records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.svc.Create(c.Request.Context(), auth.UserIDFromContext(c), req.Remark)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recordToResponse(rec))
}

// List godoc
// @Summary      List records with keyword/date filters and pagination
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        page    query  int     false  "Page, starting at 1"
// @Param        limit   query  int     false  "Page size, 1..100"
// @Param        remark  query  string  false  "Keyword, literal substring"
// @Param        start   query  string  false  "Start date (YYYY-MM-DD or full timestamp)"
// @Param        end     query  string  false  "End date (YYYY-MM-DD or full timestamp)"
// @Success      200  {object}  dto.ListRecordsResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /records [get]
func (h *RecordHandler) List(c *gin.Context) {
	params := query.Params{
		Page:     c.Query("page"),
		PageSize: c.DefaultQuery("limit", c.Query("pageSize")),
		Keyword:  c.DefaultQuery("remark", c.Query("keyword")),
		Start:    c.Query("start"),
		End:      c.Query("end"),
	}
	res, err := h.svc.List(c.Request.Context(), auth.UserIDFromContext(c), params)
	if err != nil {
		respondError(c, err)
		return
	}

	limit := int64(res.PageSize)
	c.JSON(http.StatusOK, dto.ListRecordsResponse{
		Data: recordsToResponses(res.Items),
		Pagination: dto.Pagination{
			Page:       res.Page,
			Limit:      res.PageSize,
			Total:      res.Total,
			TotalPages: (res.Total + limit - 1) / limit,
		},
	})
}

// GetByID godoc
// @Summary      Get a record by ID
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  dto.RecordResponse
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /records/{id} [get]
func (h *RecordHandler) GetByID(c *gin.Context) {
	rec, err := h.svc.GetByID(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordToResponse(rec))
}

// Update godoc
// @Summary      Update a record's remark (re-dates it to now)
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Record ID"
// @Param        body  body      dto.UpdateRecordRequest  true  "Partial update"
// @Success      200   {object}  dto.RecordResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /records/{id} [patch]
func (h *RecordHandler) Update(c *gin.Context) {
	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.svc.Update(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id"), req.Remark)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recordToResponse(rec))
}

// Delete godoc
// @Summary      Delete a record
// @Tags         records
// @Security     BearerAuth
// @Param        id   path  string  true  "Record ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /records/{id} [delete]
func (h *RecordHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), auth.UserIDFromContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondError maps service errors to statuses. Backend failures are
// logged with full cause and surfaced as an opaque 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrEmptyRemark),
		errors.Is(err, service.ErrNoFields),
		errors.Is(err, query.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func recordToResponse(r dom.Record) dto.RecordResponse {
	return dto.RecordResponse{
		ID:     r.ID,
		Remark: r.Remark,
		Date:   r.Date.UTC().Format(dateLayout),
	}
}

func recordsToResponses(list []dom.Record) []dto.RecordResponse {
	out := make([]dto.RecordResponse, len(list))
	for i := range list {
		out[i] = recordToResponse(list[i])
	}
	return out
}
