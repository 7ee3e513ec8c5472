// Package query turns listing query-string parameters into SQL filter,
// ordering and pagination fragments for the repositories.
package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"swiftride/util/apperr"
)

const maxLimit = 100

// Where accumulates AND-ed conditions written with `?` placeholders.
// SQL renumbers them to $1..$n.
type Where struct {
	conds []string
	args  []any
}

func NewWhere() *Where { return &Where{} }

func (w *Where) add(cond string, args ...any) *Where {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
	return w
}

func (w *Where) Eq(col string, v any) *Where  { return w.add(col+" = ?", v) }
func (w *Where) Gte(col string, v any) *Where { return w.add(col+" >= ?", v) }
func (w *Where) Lte(col string, v any) *Where { return w.add(col+" <= ?", v) }
func (w *Where) Lt(col string, v any) *Where  { return w.add(col+" < ?", v) }

// ILike matches term as a case-insensitive substring of any of cols.
func (w *Where) ILike(term string, cols ...string) *Where {
	if len(cols) == 0 {
		return w
	}
	pattern := "%" + escapeLike(term) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE ?"
		args[i] = pattern
	}
	if len(parts) == 1 {
		return w.add(parts[0], args...)
	}
	return w.add("("+strings.Join(parts, " OR ")+")", args...)
}

func (w *Where) Clone() *Where {
	return &Where{
		conds: append([]string(nil), w.conds...),
		args:  append([]any(nil), w.args...),
	}
}

func (w *Where) Len() int { return len(w.conds) }

// SQL renders the clause starting at placeholder $1.
func (w *Where) SQL() (string, []any) {
	return w.SQLFrom(1)
}

// SQLFrom renders the clause with placeholders numbered from start.
func (w *Where) SQLFrom(start int) (string, []any) {
	if len(w.conds) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("WHERE ")
	n := start
	for i, c := range w.conds {
		if i > 0 {
			b.WriteString(" AND ")
		}
		for _, r := range c {
			if r == '?' {
				b.WriteString("$" + strconv.Itoa(n))
				n++
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String(), append([]any(nil), w.args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Page is a 1-indexed pagination window.
type Page struct {
	Page  int
	Limit int
}

// NewPage parses page/limit, applying def when limit is absent or not positive.
func NewPage(pageStr, limitStr string, def int) (Page, error) {
	page, err := intParam("page", pageStr, 1)
	if err != nil {
		return Page{}, err
	}
	limit, err := intParam("limit", limitStr, def)
	if err != nil {
		return Page{}, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = def
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}, nil
}

func (p Page) Skip() int { return (p.Page - 1) * p.Limit }

// SQL renders LIMIT/OFFSET with placeholders numbered from start.
func (p Page) SQL(start int) (string, []any) {
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", start, start+1), []any{p.Limit, p.Skip()}
}

func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// Sort is an allow-listed ORDER BY.
type Sort struct {
	Column string
	Desc   bool
}

// NewSort maps sortBy through allowed; unknown keys fall back to def.
// Order defaults to descending unless "asc" is given.
func NewSort(sortBy, order string, allowed map[string]string, def string) Sort {
	col, ok := allowed[sortBy]
	if !ok {
		col = allowed[def]
	}
	return Sort{Column: col, Desc: !strings.EqualFold(order, "asc")}
}

// SQL renders ORDER BY with tiebreak as a stable secondary key.
func (s Sort) SQL(tiebreak string) string {
	dir := "DESC"
	if !s.Desc {
		dir = "ASC"
	}
	if tiebreak == "" || tiebreak == s.Column {
		return "ORDER BY " + s.Column + " " + dir
	}
	return "ORDER BY " + s.Column + " " + dir + ", " + tiebreak + " " + dir
}

func intParam(name, s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.New(apperr.ErrBadInput, "invalid "+name)
	}
	return n, nil
}

func floatParam(name, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, apperr.New(apperr.ErrBadInput, "invalid "+name)
	}
	return &f, nil
}

func boolParam(name, s string) (*bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, apperr.New(apperr.ErrBadInput, "invalid "+name)
	}
	return &b, nil
}

// DateRange bounds a timestamp column. From is inclusive, To exclusive;
// a nil bound is open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Apply adds the range bounds on col to w.
func (r DateRange) Apply(w *Where, col string) *Where {
	if r.From != nil {
		w.Gte(col, *r.From)
	}
	if r.To != nil {
		w.Lt(col, *r.To)
	}
	return w
}

// Key identifies the range in cache keys. From is truncated to the minute so
// rolling windows share an entry for a short while.
func (r DateRange) Key() string {
	f, t := "-", "-"
	if r.From != nil {
		f = r.From.UTC().Truncate(time.Minute).Format(time.RFC3339)
	}
	if r.To != nil {
		t = r.To.UTC().Format(time.RFC3339)
	}
	return f + "_" + t
}
