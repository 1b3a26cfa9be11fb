package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/shared/utils"
	"storefront-backend/pkg/logger"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"

	productColumns = `p.id, p.category_id, p.name, p.slug, p.description, p.price, p.weight_unit,
		p.image_url, p.discount_percent, p.is_popular, p.stock, p.created_at, p.updated_at`
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresRepository{pool: pool}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	err := row.Scan(
		&p.ID,
		&p.CategoryID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.WeightUnit,
		&p.ImageURL,
		&p.DiscountPercent,
		&p.IsPopular,
		&p.Stock,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return model.ErrDuplicateSlug
		case foreignKeyViolation:
			if pgErr.TableName == "order_items" {
				return model.ErrProductInUse
			}
			return model.ErrCategoryNotFound
		}
	}
	logger.Error(op+": database error", err)
	return fmt.Errorf("failed to %s product: %w", op, err)
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products AS p (
			id, category_id, name, slug, description, price, weight_unit,
			image_url, discount_percent, is_popular, stock, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + productColumns

	created, err := scanProduct(r.pool.QueryRow(ctx, query,
		p.ID,
		p.CategoryID,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.WeightUnit,
		p.ImageURL,
		p.DiscountPercent,
		p.IsPopular,
		p.Stock,
		p.CreatedAt,
		p.UpdatedAt,
	))
	if err != nil {
		return mapWriteError("create", err)
	}

	*p = *created
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.slug = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by slug: %w", err)
	}
	return p, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Product, error) {
	if len(ids) == 0 {
		return []*model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]*model.Product, error) {
	products := make([]*model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return products, nil
}

// buildWhere assembles the WHERE clause shared by the list and count queries
func buildWhere(filter ListFilter) (string, []interface{}) {
	var w utils.Where

	if filter.CategorySlug != "" {
		w.And("c.slug = " + w.Arg(filter.CategorySlug))
	}
	if filter.PopularOnly {
		w.And("p.is_popular = TRUE")
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		ph := w.Arg("%" + search + "%")
		w.And(fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", ph, ph))
	}

	return w.Clause(), w.Args()
}

func (r *postgresRepository) List(ctx context.Context, filter ListFilter) ([]*model.Product, int, error) {
	where, args := buildWhere(filter)
	from := ` FROM products p JOIN categories c ON c.id = p.category_id ` + where

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := `SELECT ` + productColumns + from +
		fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products AS p
		SET category_id = $2, name = $3, slug = $4, description = $5, price = $6,
			weight_unit = $7, image_url = $8, discount_percent = $9, is_popular = $10,
			stock = $11, updated_at = $12
		WHERE p.id = $1
		RETURNING ` + productColumns

	updated, err := scanProduct(r.pool.QueryRow(ctx, query,
		p.ID,
		p.CategoryID,
		p.Name,
		p.Slug,
		p.Description,
		p.Price,
		p.WeightUnit,
		p.ImageURL,
		p.DiscountPercent,
		p.IsPopular,
		p.Stock,
		p.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrProductNotFound
		}
		return mapWriteError("update", err)
	}

	*p = *updated
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS(
			SELECT 1 FROM products
			WHERE slug = $1 AND ($2::uuid IS NULL OR id <> $2)
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) SlugsByCategory(ctx context.Context, categoryID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT slug FROM products WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product slugs: %w", err)
	}

	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan product slugs: %w", err)
	}
	return slugs, nil
}
