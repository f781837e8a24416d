package query

import (
	"fmt"
	"strings"
)

// Mode selects which variant of a list query a builder emits.
type Mode int

const (
	// ModeData fetches one page of rows, newest first.
	ModeData Mode = iota
	// ModeCount counts all rows matching the same predicates.
	ModeCount
)

// BuildSQL turns a Filter into a parameterized Postgres statement for
// the records table. Data and count share identical predicates; only
// the data variant carries ORDER BY / LIMIT / OFFSET. The keyword is
// always bound as a parameter, never spliced into the text, and LIKE
// metacharacters inside it are escaped so it matches literally.
func BuildSQL(f Filter, mode Mode) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Keyword != "" {
		clauses = append(clauses, "remark ILIKE "+arg("%"+escapeLike(f.Keyword)+"%"))
	}
	if f.StartAt != nil {
		clauses = append(clauses, "date >= "+arg(*f.StartAt))
	}
	if f.EndAt != nil {
		clauses = append(clauses, "date <= "+arg(*f.EndAt))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	if mode == ModeCount {
		return "SELECT COUNT(*) FROM records" + where, args
	}

	sql := "SELECT id, remark, date FROM records" + where +
		" ORDER BY date DESC LIMIT " + arg(f.PageSize) + " OFFSET " + arg(f.Offset())
	return sql, args
}

// escapeLike neutralizes LIKE wildcards in a user keyword. Postgres
// treats backslash as the default escape character.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
