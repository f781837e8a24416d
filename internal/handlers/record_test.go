package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/query"
	"github.com/1810649011/my-web-end/internal/repo"
	"github.com/1810649011/my-web-end/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubRepo returns canned results; err wins when set.
type stubRepo struct {
	record dom.Record
	page   repo.Page
	err    error
}

func (s *stubRepo) Create(_ context.Context, owner, remark string, date time.Time) (dom.Record, error) {
	if s.err != nil {
		return dom.Record{}, s.err
	}
	return dom.Record{ID: "1", OwnerID: owner, Remark: remark, Date: date}, nil
}

func (s *stubRepo) GetByID(context.Context, string, string) (dom.Record, error) {
	return s.record, s.err
}

func (s *stubRepo) UpdateRemark(_ context.Context, _, id, remark string, date time.Time) (dom.Record, error) {
	if s.err != nil {
		return dom.Record{}, s.err
	}
	return dom.Record{ID: id, Remark: remark, Date: date}, nil
}

func (s *stubRepo) Delete(context.Context, string, string) error { return s.err }

func (s *stubRepo) List(context.Context, query.Filter) (repo.Page, error) {
	return s.page, s.err
}

func newTestRouter(r repo.RecordRepo) *gin.Engine {
	router := gin.New()
	// Stand-in for the JWT middleware: user id comes from a header.
	router.Use(func(c *gin.Context) {
		if uid := c.GetHeader("X-User-ID"); uid != "" {
			c.Set("user_id", uid)
		}
		c.Next()
	})

	h := NewRecordHandler(service.NewRecordService(r))
	g := router.Group("/api/v1/records")
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "507f1f77bcf86cd799439011")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListEnvelope(t *testing.T) {
	date := time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
	router := newTestRouter(&stubRepo{page: repo.Page{
		Items: []dom.Record{
			{ID: "2", Remark: "pay rent", Date: date},
			{ID: "1", Remark: "buy milk", Date: date.Add(-time.Hour)},
		},
		Total: 25,
	}})

	w := doJSON(router, http.MethodGet, "/api/v1/records?page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			ID     string `json:"id"`
			Remark string `json:"remark"`
			Date   string `json:"date"`
		} `json:"data"`
		Pagination struct {
			Page       int   `json:"page"`
			Limit      int   `json:"limit"`
			Total      int64 `json:"total"`
			TotalPages int64 `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "2", resp.Data[0].ID)
	assert.Equal(t, "2024-01-10 09:30:00", resp.Data[0].Date)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 10, resp.Pagination.Limit)
	assert.Equal(t, int64(25), resp.Pagination.Total)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)
}

func TestListEmptyPageHasEmptyDataArray(t *testing.T) {
	router := newTestRouter(&stubRepo{page: repo.Page{Total: 0}})

	w := doJSON(router, http.MethodGet, "/api/v1/records", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListBadDateIs400(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := doJSON(router, http.MethodGet, "/api/v1/records?start=banana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListStorageErrorIsOpaque500(t *testing.T) {
	router := newTestRouter(&stubRepo{err: errors.New("pq: connection refused to 10.0.0.5")})

	w := doJSON(router, http.MethodGet, "/api/v1/records", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestCreate(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := doJSON(router, http.MethodPost, "/api/v1/records", gin.H{"remark": "buy milk"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "buy milk", resp["remark"])
	assert.NotContains(t, resp, "ownerId")
	assert.NotContains(t, resp, "userId")
}

func TestCreateMissingRemarkIs400(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := doJSON(router, http.MethodPost, "/api/v1/records", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/records", gin.H{"remark": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetByIDNotFound(t *testing.T) {
	router := newTestRouter(&stubRepo{err: repo.ErrNotFound})

	w := doJSON(router, http.MethodGet, "/api/v1/records/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestUpdateWithoutFieldsIs400(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := doJSON(router, http.MethodPatch, "/api/v1/records/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	router := newTestRouter(&stubRepo{})

	w := doJSON(router, http.MethodPatch, "/api/v1/records/7", gin.H{"remark": "new text"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "7", resp["id"])
	assert.Equal(t, "new text", resp["remark"])
}

func TestDelete(t *testing.T) {
	router := newTestRouter(&stubRepo{})
	w := doJSON(router, http.MethodDelete, "/api/v1/records/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	router = newTestRouter(&stubRepo{err: repo.ErrNotFound})
	w = doJSON(router, http.MethodDelete, "/api/v1/records/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
