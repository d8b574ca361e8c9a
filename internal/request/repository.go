package request

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id int64) (*Request, error)
	List(ctx context.Context, filter Filter) ([]*Request, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var requestColumns = []string{"id", "requester_id", "description", "created_at"}

func scanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(&r.ID, &r.RequesterID, &r.Description, &r.CreatedAt)
	return &r, err
}

func (p *pgxRepository) Create(ctx context.Context, r *Request) error {
	query, args, err := psql.Insert("public.requests").
		Columns("requester_id", "description").
		Values(r.RequesterID, r.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query failed: %w", err)
	}

	if err := p.pool.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt); err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	return nil
}

func (p *pgxRepository) GetByID(ctx context.Context, id int64) (*Request, error) {
	query, args, err := psql.Select(requestColumns...).
		From("public.requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query failed: %w", err)
	}

	r, err := scanRequest(p.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	return r, nil
}

func (p *pgxRepository) List(ctx context.Context, filter Filter) ([]*Request, error) {
	query := psql.Select(requestColumns...).
		From("public.requests").
		OrderBy("created_at DESC", "id DESC")

	if filter.RequesterID != 0 {
		query = query.Where(squirrel.Eq{"requester_id": filter.RequesterID})
	}
	if filter.ExcludeRequesterID != 0 {
		query = query.Where(squirrel.NotEq{"requester_id": filter.ExcludeRequesterID})
	}
	if filter.Size > 0 {
		query = query.Limit(uint64(filter.Size)).Offset(uint64(filter.From))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan request failed: %w", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests failed: %w", err)
	}
	return requests, nil
}
