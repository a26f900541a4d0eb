package database

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// QueryBuilder provides a fluent, type-safe API for building database queries
type QueryBuilder[T any] struct {
	db *DB

	// Query clauses
	wheres    []*WhereClause
	orders    []*OrderClause
	limitVal  *int
	offsetVal *int

	// Relations to preload
	relations []string

	// Timeout
	timeout time.Duration
}

// WhereClause represents a single WHERE condition. Raw clauses carry
// their own SQL and args; structured clauses are column/operator/value.
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction string // ASC or DESC
}

// Query creates a new query builder for the given model type
func Query[T any](db *DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{
		db: db,
	}
}

// Where adds a structured WHERE condition
func (q *QueryBuilder[T]) Where(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: strings.ToUpper(operator),
		Value:    value,
	})
	return q
}

// WhereRaw adds a raw SQL WHERE condition with placeholders
func (q *QueryBuilder[T]) WhereRaw(sql string, args ...any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  sql,
		RawArgs: args,
	})
	return q
}

// OrderBy adds an ORDER BY clause. Direction defaults to ASC.
func (q *QueryBuilder[T]) OrderBy(column string, direction ...string) *QueryBuilder[T] {
	dir := "ASC"
	if len(direction) > 0 && strings.EqualFold(direction[0], "DESC") {
		dir = "DESC"
	}
	q.orders = append(q.orders, &OrderClause{Column: column, Direction: dir})
	return q
}

// Limit caps the number of returned rows
func (q *QueryBuilder[T]) Limit(n int) *QueryBuilder[T] {
	q.limitVal = &n
	return q
}

// Offset skips the first n rows
func (q *QueryBuilder[T]) Offset(n int) *QueryBuilder[T] {
	q.offsetVal = &n
	return q
}

// Relation preloads a bun relation (has-many, belongs-to)
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, name)
	return q
}

// Timeout sets a per-query deadline applied by the executor
func (q *QueryBuilder[T]) Timeout(d time.Duration) *QueryBuilder[T] {
	q.timeout = d
	return q
}

// buildSelect assembles a bun SelectQuery bound to the given model
// destination. The destination must be *T or *[]T.
func (q *QueryBuilder[T]) buildSelect(dest any) *bun.SelectQuery {
	query := q.db.NewSelect().Model(dest)

	query = applyWheres(query, q.wheres)

	for _, order := range q.orders {
		query = query.OrderExpr("? ?", bun.Ident(order.Column), bun.Safe(order.Direction))
	}

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}

	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

func applyWheres(query *bun.SelectQuery, wheres []*WhereClause) *bun.SelectQuery {
	for _, where := range wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
			continue
		}
		if where.Operator == "IS NULL" || where.Operator == "IS NOT NULL" {
			query = query.Where("? ?", bun.Ident(where.Column), bun.Safe(where.Operator))
			continue
		}
		query = query.Where("? ? ?", bun.Ident(where.Column), bun.Safe(where.Operator), where.Value)
	}
	return query
}

func applyWheresToUpdate(query *bun.UpdateQuery, wheres []*WhereClause) *bun.UpdateQuery {
	for _, where := range wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
			continue
		}
		if where.Operator == "IS NULL" || where.Operator == "IS NOT NULL" {
			query = query.Where("? ?", bun.Ident(where.Column), bun.Safe(where.Operator))
			continue
		}
		query = query.Where("? ? ?", bun.Ident(where.Column), bun.Safe(where.Operator), where.Value)
	}
	return query
}

func applyWheresToDelete(query *bun.DeleteQuery, wheres []*WhereClause) *bun.DeleteQuery {
	for _, where := range wheres {
		if where.IsRaw {
			query = query.Where(where.RawSQL, where.RawArgs...)
			continue
		}
		if where.Operator == "IS NULL" || where.Operator == "IS NOT NULL" {
			query = query.Where("? ?", bun.Ident(where.Column), bun.Safe(where.Operator))
			continue
		}
		query = query.Where("? ? ?", bun.Ident(where.Column), bun.Safe(where.Operator), where.Value)
	}
	return query
}
