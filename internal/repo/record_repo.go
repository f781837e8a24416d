package repo

import (
	"context"
	"errors"
	"time"

	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/query"
)

// ErrNotFound is reported when a record does not exist, or exists but
// belongs to another owner. Repos never distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// Page is one page of list results plus the total match count.
type Page struct {
	Items []dom.Record
	Total int64
}

// RecordRepo provides record persistence. Two implementations exist:
// a single-tenant Postgres one (owner arguments are ignored) and an
// owner-scoped Mongo one. Select one at wiring time.
type RecordRepo interface {
	Create(ctx context.Context, owner, remark string, date time.Time) (dom.Record, error)
	GetByID(ctx context.Context, owner, id string) (dom.Record, error)
	UpdateRemark(ctx context.Context, owner, id, remark string, date time.Time) (dom.Record, error)
	Delete(ctx context.Context, owner, id string) error
	List(ctx context.Context, f query.Filter) (Page, error)
}
