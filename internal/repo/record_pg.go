package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	dom "github.com/1810649011/my-web-end/internal/domain"
	"github.com/1810649011/my-web-end/internal/query"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// PGRecordRepo implements RecordRepo with Postgres. The records table
// has no owner column: this variant is single-tenant and the owner
// argument is ignored everywhere.
type PGRecordRepo struct {
	db *pgxpool.Pool
}

// NewPGRecordRepo returns a new PGRecordRepo.
func NewPGRecordRepo(db *pgxpool.Pool) *PGRecordRepo {
	return &PGRecordRepo{db: db}
}

func (r *PGRecordRepo) Create(ctx context.Context, _ string, remark string, date time.Time) (dom.Record, error) {
	var rec dom.Record
	err := r.db.QueryRow(ctx,
		`INSERT INTO records (remark, date) VALUES ($1, $2) RETURNING id::text, remark, date`,
		remark, date,
	).Scan(&rec.ID, &rec.Remark, &rec.Date)
	if err != nil {
		return dom.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

func (r *PGRecordRepo) GetByID(ctx context.Context, _ string, id string) (dom.Record, error) {
	n, ok := parseID(id)
	if !ok {
		return dom.Record{}, ErrNotFound
	}
	var rec dom.Record
	err := r.db.QueryRow(ctx,
		`SELECT id::text, remark, date FROM records WHERE id = $1`, n,
	).Scan(&rec.ID, &rec.Remark, &rec.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Record{}, ErrNotFound
	}
	if err != nil {
		return dom.Record{}, fmt.Errorf("select record: %w", err)
	}
	return rec, nil
}

func (r *PGRecordRepo) UpdateRemark(ctx context.Context, _ string, id, remark string, date time.Time) (dom.Record, error) {
	n, ok := parseID(id)
	if !ok {
		return dom.Record{}, ErrNotFound
	}
	var rec dom.Record
	err := r.db.QueryRow(ctx,
		`UPDATE records SET remark = $2, date = $3 WHERE id = $1 RETURNING id::text, remark, date`,
		n, remark, date,
	).Scan(&rec.ID, &rec.Remark, &rec.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return dom.Record{}, ErrNotFound
	}
	if err != nil {
		return dom.Record{}, fmt.Errorf("update record: %w", err)
	}
	return rec, nil
}

func (r *PGRecordRepo) Delete(ctx context.Context, _ string, id string) error {
	n, ok := parseID(id)
	if !ok {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM records WHERE id = $1`, n)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// List runs the data and count statements concurrently. The two share
// the same predicates but are not transactionally linked; the total
// may be momentarily stale under concurrent writes.
func (r *PGRecordRepo) List(ctx context.Context, f query.Filter) (Page, error) {
	dataSQL, dataArgs := query.BuildSQL(f, query.ModeData)
	countSQL, countArgs := query.BuildSQL(f, query.ModeCount)

	var page Page
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.db.Query(gctx, dataSQL, dataArgs...)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		defer rows.Close()
		var list []dom.Record
		for rows.Next() {
			var (
				rec dom.Record
				id  int64
			)
			if err := rows.Scan(&id, &rec.Remark, &rec.Date); err != nil {
				return fmt.Errorf("scan record: %w", err)
			}
			rec.ID = strconv.FormatInt(id, 10)
			list = append(list, rec)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		page.Items = list
		return nil
	})

	g.Go(func() error {
		if err := r.db.QueryRow(gctx, countSQL, countArgs...).Scan(&page.Total); err != nil {
			return fmt.Errorf("count records: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Page{}, err
	}
	return page, nil
}

// parseID rejects ids that cannot name a Postgres row. An invalid id
// reads as "not found", matching the ownership rule: the caller never
// learns why the record is unreachable.
func parseID(id string) (int64, bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
