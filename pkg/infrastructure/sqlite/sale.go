package sqlite

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"sales/pkg/domain/model"
)

var _ model.SaleRepository = &SaleRepository{}

type saleRow struct {
	Seq             int64  `db:"seq"`
	ID              int    `db:"id"`
	CustomerID      int    `db:"customer_id"`
	CustomerName    string `db:"customer_name"`
	CustomerAddress string `db:"customer_address"`
}

type saleItemRow struct {
	SaleSeq   int64           `db:"sale_seq"`
	ProductID int             `db:"product_id"`
	Name      string          `db:"name"`
	Price     decimal.Decimal `db:"price"`
}

type SaleRepository struct {
	db *sqlx.DB
}

func NewSaleRepository(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Store(sale *model.Sale) (err error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	customer := sale.Customer()
	res, err := tx.Exec(
		`INSERT INTO sales (id, customer_id, customer_name, customer_address) VALUES (?, ?, ?, ?)`,
		sale.ID(), customer.ID(), customer.Name(), customer.Address(),
	)
	if err != nil {
		return errors.Wrapf(err, "insert sale %d", sale.ID())
	}
	saleSeq, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "read sale seq")
	}

	for _, product := range sale.Products() {
		_, err = tx.Exec(
			`INSERT INTO sale_items (sale_seq, product_id, name, price) VALUES (?, ?, ?, ?)`,
			saleSeq, product.ID(), product.Name(), product.Price().String(),
		)
		if err != nil {
			return errors.Wrapf(err, "insert item of sale %d", sale.ID())
		}
	}

	return errors.Wrap(tx.Commit(), "commit sale")
}

func (r *SaleRepository) ListAll() ([]*model.Sale, error) {
	var sales []saleRow
	if err := r.db.Select(&sales, `SELECT seq, id, customer_id, customer_name, customer_address FROM sales ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "select sales")
	}

	var items []saleItemRow
	if err := r.db.Select(&items, `SELECT sale_seq, product_id, name, price FROM sale_items ORDER BY seq`); err != nil {
		return nil, errors.Wrap(err, "select sale items")
	}

	products := make(map[int64][]model.Product, len(sales))
	for _, item := range items {
		products[item.SaleSeq] = append(products[item.SaleSeq], model.NewProduct(item.ProductID, item.Name, item.Price))
	}

	result := make([]*model.Sale, 0, len(sales))
	for _, row := range sales {
		customer := model.NewCustomer(row.CustomerID, row.CustomerName, row.CustomerAddress)
		result = append(result, model.RestoreSale(row.ID, customer, products[row.Seq]))
	}
	return result, nil
}
