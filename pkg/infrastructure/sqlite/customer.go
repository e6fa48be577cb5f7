package sqlite

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"sales/pkg/domain/model"
)

var _ model.CustomerRepository = &CustomerRepository{}

type customerRow struct {
	ID      int    `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
}

func (r customerRow) toModel() model.Customer {
	return model.NewCustomer(r.ID, r.Name, r.Address)
}

type CustomerRepository struct {
	db *sqlx.DB
}

func NewCustomerRepository(db *sqlx.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Store(customer model.Customer) error {
	_, err := r.db.Exec(
		`INSERT INTO customers (id, name, address) VALUES (?, ?, ?)`,
		customer.ID(), customer.Name(), customer.Address(),
	)
	return errors.Wrapf(err, "insert customer %d", customer.ID())
}

func (r *CustomerRepository) FindFirst(id int) (model.Customer, error) {
	var row customerRow
	err := r.db.Get(&row, `SELECT id, name, address FROM customers WHERE id = ? ORDER BY seq LIMIT 1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Customer{}, model.ErrCustomerNotFound
	}
	if err != nil {
		return model.Customer{}, errors.Wrapf(err, "select customer %d", id)
	}
	return row.toModel(), nil
}

func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	var rows []customerRow
	if err := r.db.Select(&rows, `SELECT id, name, address FROM customers ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "select customers")
	}

	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.toModel())
	}
	return customers, nil
}
