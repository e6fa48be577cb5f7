package sqlite

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"sales/pkg/domain/model"
)

var _ model.ProductRepository = &ProductRepository{}

type productRow struct {
	ID    int             `db:"id"`
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`
}

func (r productRow) toModel() model.Product {
	return model.NewProduct(r.ID, r.Name, r.Price)
}

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Store(product model.Product) error {
	_, err := r.db.Exec(
		`INSERT INTO products (id, name, price) VALUES (?, ?, ?)`,
		product.ID(), product.Name(), product.Price().String(),
	)
	return errors.Wrapf(err, "insert product %d", product.ID())
}

func (r *ProductRepository) FindFirst(id int) (model.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT id, name, price FROM products WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, model.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, errors.Wrapf(err, "select product %d", id)
	}
	return row.toModel(), nil
}

func (r *ProductRepository) ListAll() ([]model.Product, error) {
	var rows []productRow
	if err := r.db.Select(&rows, `SELECT id, name, price FROM products ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "select products")
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, row.toModel())
	}
	return products, nil
}
