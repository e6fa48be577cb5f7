package model

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Sale is a transaction for one customer. Products are append-only and
// total always equals the sum of their prices.
type Sale struct {
	id       int
	customer Customer
	products []Product
	total    decimal.Decimal
}

func NewSale(id int, customer Customer) *Sale {
	return &Sale{
		id:       id,
		customer: customer,
		total:    decimal.Zero,
	}
}

// RestoreSale rebuilds a stored sale. The total is recomputed from products.
func RestoreSale(id int, customer Customer, products []Product) *Sale {
	sale := NewSale(id, customer)
	for _, product := range products {
		sale.AddProduct(product)
	}
	return sale
}

func (s *Sale) AddProduct(product Product) {
	s.products = append(s.products, product)
	s.total = s.total.Add(product.Price())
}

func (s *Sale) ID() int                { return s.id }
func (s *Sale) Customer() Customer     { return s.customer }
func (s *Sale) Total() decimal.Decimal { return s.total }

func (s *Sale) Products() []Product {
	return slices.Clone(s.products)
}

type SaleRepository interface {
	Store(sale *Sale) error
	ListAll() ([]*Sale, error)
}
