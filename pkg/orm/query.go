// Package orm wraps GORM with a small chainable query builder that times
// every statement into metrics.DBQueryDuration.
package orm

import (
	"context"
	"time"

	"github.com/shashiranjanraj/ventas/pkg/metrics"
	"gorm.io/gorm"
)

// ErrRecordNotFound is returned by First when no row matches.
var ErrRecordNotFound = gorm.ErrRecordNotFound

type Query struct {
	db *gorm.DB
}

// New starts a query on db.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v any) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...any) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest any) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.Find(dest).Error
}

func (q *Query) First(dest any) error {
	defer metrics.ObserveDBQuery("select", time.Now())
	return q.db.First(dest).Error
}

func (q *Query) Create(v any) error {
	defer metrics.ObserveDBQuery("insert", time.Now())
	return q.db.Create(v).Error
}

// Delete removes the rows matching model and the chained conditions and
// returns how many were affected.
func (q *Query) Delete(model any, conds ...any) (int64, error) {
	defer metrics.ObserveDBQuery("delete", time.Now())
	res := q.db.Delete(model, conds...)
	return res.RowsAffected, res.Error
}

func (q *Query) Count() (int64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Sum returns SUM(column), or 0 for an empty table.
func (q *Query) Sum(column string) (float64, error) {
	defer metrics.ObserveDBQuery("select", time.Now())
	var total float64
	err := q.db.Select("COALESCE(SUM(" + column + "), 0)").Row().Scan(&total)
	return total, err
}
