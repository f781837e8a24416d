package service

import (
	"context"
	"errors"
	"strings"
	"time"

	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/query"
	"github.com/1810649011/my-web-end/internal/repo"
)

var (
	// ErrNotFound covers both a missing record and an ownership
	// mismatch; callers cannot tell them apart.
	ErrNotFound = repo.ErrNotFound
	// ErrEmptyRemark rejects empty or whitespace-only remarks.
	ErrEmptyRemark = errors.New("remark must not be empty")
	// ErrNoFields rejects updates that supply nothing to change.
	ErrNoFields = errors.New("no updatable fields supplied")
)

// ListResult is one page of records plus pagination inputs echoed back
// for the response envelope.
type ListResult struct {
	Items    []dom.Record
	Total    int64
	Page     int
	PageSize int
}

// RecordService implements record CRUD and the filtered, paginated
// list pipeline over any RecordRepo. Owner scoping is applied here,
// once, so no handler can forget it: single-record operations pass the
// owner to the repo, and List injects it into the filter descriptor
// after normalization. For the single-tenant relational repo the owner
// is simply "".
type RecordService struct {
	repo repo.RecordRepo
}

// NewRecordService creates a RecordService over r.
func NewRecordService(r repo.RecordRepo) *RecordService {
	return &RecordService{repo: r}
}

// Create stores a new record dated now.
func (s *RecordService) Create(ctx context.Context, owner, remark string) (dom.Record, error) {
	remark = strings.TrimSpace(remark)
	if remark == "" {
		return dom.Record{}, ErrEmptyRemark
	}
	return s.repo.Create(ctx, owner, remark, time.Now().UTC())
}

// GetByID returns the record, or ErrNotFound.
func (s *RecordService) GetByID(ctx context.Context, owner, id string) (dom.Record, error) {
	return s.repo.GetByID(ctx, owner, id)
}

// Update replaces the remark and re-dates the record to now. Every
// update moves the record to the top of the date-descending list; that
// is the product rule, not an accident.
func (s *RecordService) Update(ctx context.Context, owner, id string, remark *string) (dom.Record, error) {
	if remark == nil {
		return dom.Record{}, ErrNoFields
	}
	text := strings.TrimSpace(*remark)
	if text == "" {
		return dom.Record{}, ErrEmptyRemark
	}
	return s.repo.UpdateRemark(ctx, owner, id, text, time.Now().UTC())
}

// Delete removes the record. Deleting an already-deleted id reports
// ErrNotFound.
func (s *RecordService) Delete(ctx context.Context, owner, id string) error {
	return s.repo.Delete(ctx, owner, id)
}

// List normalizes raw query parameters, pins the owner on the
// descriptor and runs the count+data queries. A malformed date bound
// surfaces as query.ErrInvalidDate before any backend call.
func (s *RecordService) List(ctx context.Context, owner string, p query.Params) (ListResult, error) {
	f, err := query.Normalize(p)
	if err != nil {
		return ListResult{}, err
	}
	f.Owner = owner

	page, err := s.repo.List(ctx, f)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{
		Items:    page.Items,
		Total:    page.Total,
		Page:     f.Page,
		PageSize: f.PageSize,
	}, nil
}
