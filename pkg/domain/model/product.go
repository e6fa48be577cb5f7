package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. It is immutable once constructed; ids are not
// required to be unique.
type Product struct {
	id    int
	name  string
	price decimal.Decimal
}

func NewProduct(id int, name string, price decimal.Decimal) Product {
	return Product{id: id, name: name, price: price}
}

func (p Product) ID() int                { return p.id }
func (p Product) Name() string           { return p.name }
func (p Product) Price() decimal.Decimal { return p.price }

// ProductRepository keeps products in registration order. FindFirst returns
// the earliest registered product with the given id.
type ProductRepository interface {
	Store(product Product) error
	FindFirst(id int) (Product, error)
	ListAll() ([]Product, error)
}
