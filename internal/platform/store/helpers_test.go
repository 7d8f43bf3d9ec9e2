package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type yearRows struct {
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *yearRows) Columns() []string { return []string{"year", "area_km2"} }
func (r *yearRows) Err() error        { return r.err }
func (r *yearRows) Close()            { r.closed = true }

func (r *yearRows) Next() bool {
	if r.i >= len(r.data) {
		return false
	}
	r.i++
	return true
}

func (r *yearRows) Scan(dest ...any) error {
	row := r.data[r.i-1]
	if len(dest) != len(row) {
		return errors.New("column count")
	}
	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(row[i]))
	}
	return nil
}

type rowsQuerier struct {
	rows Rows
	err  error
	sql  string
}

func (q *rowsQuerier) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (q *rowsQuerier) QueryRow(context.Context, string, ...any) Row            { return nil }
func (q *rowsQuerier) Query(_ context.Context, sql string, _ ...any) (Rows, error) {
	q.sql = sql
	return q.rows, q.err
}

type yearArea struct {
	Year int
	Area float64
}

func scanYearArea(r Row) (yearArea, error) {
	var y yearArea
	err := r.Scan(&y.Year, &y.Area)
	return y, err
}

func TestMany(t *testing.T) {
	ctx := context.Background()

	t.Run("maps every row", func(t *testing.T) {
		rows := &yearRows{data: [][]any{{2023, 9001.5}, {2024, 6288.0}}}
		q := &rowsQuerier{rows: rows}
		got, err := Many(ctx, q, scanYearArea, "select year, area_km2 from deforestation_areas")
		if err != nil {
			t.Fatal(err)
		}
		want := []yearArea{{2023, 9001.5}, {2024, 6288.0}}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		if !rows.closed {
			t.Fatal("rows not closed")
		}
	})

	t.Run("empty is nil", func(t *testing.T) {
		got, err := Many(ctx, &rowsQuerier{rows: &yearRows{}}, scanYearArea, "q")
		if err != nil || got != nil {
			t.Fatalf("got %v, %v", got, err)
		}
	})

	t.Run("query error", func(t *testing.T) {
		boom := errors.New("boom")
		if _, err := Many(ctx, &rowsQuerier{err: boom}, scanYearArea, "q"); !errors.Is(err, boom) {
			t.Fatalf("err = %v", err)
		}
	})

	t.Run("scan error", func(t *testing.T) {
		rows := &yearRows{data: [][]any{{2023}}}
		if _, err := Many(ctx, &rowsQuerier{rows: rows}, scanYearArea, "q"); err == nil {
			t.Fatal("expected scan error")
		}
	})

	t.Run("iterator error", func(t *testing.T) {
		iter := errors.New("conn reset")
		rows := &yearRows{data: [][]any{{2023, 1.0}}, err: iter}
		if _, err := Many(ctx, &rowsQuerier{rows: rows}, scanYearArea, "q"); !errors.Is(err, iter) {
			t.Fatalf("err = %v", err)
		}
	})
}
