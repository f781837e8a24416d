package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSQLNoFilters(t *testing.T) {
	f := Filter{Page: 1, PageSize: 10}

	sql, args := BuildSQL(f, ModeData)
	assert.Equal(t, "SELECT id, remark, date FROM records ORDER BY date DESC LIMIT $1 OFFSET $2", sql)
	assert.Equal(t, []any{10, 0}, args)

	sql, args = BuildSQL(f, ModeCount)
	assert.Equal(t, "SELECT COUNT(*) FROM records", sql)
	assert.Empty(t, args)
}

func TestBuildSQLKeywordIsBoundNotSpliced(t *testing.T) {
	f := Filter{Keyword: "milk", Page: 1, PageSize: 10}

	sql, args := BuildSQL(f, ModeData)
	assert.Equal(t,
		"SELECT id, remark, date FROM records WHERE remark ILIKE $1 ORDER BY date DESC LIMIT $2 OFFSET $3",
		sql)
	assert.Equal(t, []any{"%milk%", 10, 0}, args)
	assert.NotContains(t, sql, "milk")
}

func TestBuildSQLKeywordMetacharactersEscaped(t *testing.T) {
	f := Filter{Keyword: `50%_off\now`, Page: 1, PageSize: 10}

	_, args := BuildSQL(f, ModeData)
	require.NotEmpty(t, args)
	assert.Equal(t, `%50\%\_off\\now%`, args[0])
}

func TestBuildSQLDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 5, 23, 59, 59, 999_000_000, time.UTC)
	f := Filter{StartAt: &start, EndAt: &end, Page: 2, PageSize: 20}

	sql, args := BuildSQL(f, ModeData)
	assert.Equal(t,
		"SELECT id, remark, date FROM records WHERE date >= $1 AND date <= $2 ORDER BY date DESC LIMIT $3 OFFSET $4",
		sql)
	assert.Equal(t, []any{start, end, 20, 20}, args)
}

func TestBuildSQLSingleBound(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sql, args := BuildSQL(Filter{StartAt: &start, Page: 1, PageSize: 10}, ModeCount)
	assert.Equal(t, "SELECT COUNT(*) FROM records WHERE date >= $1", sql)
	assert.Equal(t, []any{start}, args)
}

// Count and data must share identical predicates so the total matches
// the page under a static dataset.
func TestBuildSQLCountSharesPredicates(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := Filter{Keyword: "rent", StartAt: &start, Page: 3, PageSize: 10}

	dataSQL, dataArgs := BuildSQL(f, ModeData)
	countSQL, countArgs := BuildSQL(f, ModeCount)

	assert.Equal(t, "SELECT COUNT(*) FROM records WHERE remark ILIKE $1 AND date >= $2", countSQL)
	assert.Equal(t, dataArgs[:len(countArgs)], countArgs)
	assert.Contains(t, dataSQL, "WHERE remark ILIKE $1 AND date >= $2")
	assert.NotContains(t, countSQL, "LIMIT")
	assert.NotContains(t, countSQL, "ORDER BY")
}

func TestBuildSQLIsPure(t *testing.T) {
	f := Filter{Keyword: "x", Page: 2, PageSize: 5}

	sql1, args1 := BuildSQL(f, ModeData)
	sql2, args2 := BuildSQL(f, ModeData)
	assert.Equal(t, sql1, sql2)
	assert.Equal(t, args1, args2)
}
