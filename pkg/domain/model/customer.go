package model

import "errors"

var ErrCustomerNotFound = errors.New("customer not found")

type Customer struct {
	id      int
	name    string
	address string
}

func NewCustomer(id int, name, address string) Customer {
	return Customer{id: id, name: name, address: address}
}

func (c Customer) ID() int         { return c.id }
func (c Customer) Name() string    { return c.name }
func (c Customer) Address() string { return c.address }

type CustomerRepository interface {
	Store(customer Customer) error
	FindFirst(id int) (Customer, error)
	ListAll() ([]Customer, error)
}
