package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_form_app/internal/apperrors"
	"github.com/SscSPs/invoice_form_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_form_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalog products.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// FindProductByID retrieves a product by its numeric identifier.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	query := `
		SELECT id::text, name, item_code, price, quantity
		FROM products
		WHERE id = $1;
	`
	var p domain.Product
	err = r.Pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.ItemCode, &p.Price, &p.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by id %s: %w", productID, err)
	}
	return &p, nil
}

// SearchProducts matches term case-insensitively against name and item code.
func (r *PgxProductRepository) SearchProducts(ctx context.Context, term string, limit int) ([]domain.Product, error) {
	query := `
		SELECT id::text, name, item_code, price, quantity
		FROM products
		WHERE $1 = '' OR name ILIKE '%' || $1 || '%' ESCAPE '\' OR item_code ILIKE '%' || $1 || '%' ESCAPE '\'
		ORDER BY name
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, escapeLike(term), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		var p domain.Product
		err := row.Scan(&p.ID, &p.Name, &p.ItemCode, &p.Price, &p.Quantity)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return products, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
