package store

import "context"

// Many runs sql and maps every row through scan
// an empty result is a nil slice
func Many[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	r := rowFromRows{rows: rows}
	for rows.Next() {
		item, err := scan(r)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// rowFromRows presents the current Rows position as a Row
type rowFromRows struct{ rows Rows }

func (r rowFromRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
