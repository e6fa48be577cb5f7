package memory

import "sales/pkg/domain/model"

var _ model.CustomerRepository = &CustomerRepository{}

type CustomerRepository struct {
	customers []model.Customer
}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) Store(customer model.Customer) error {
	r.customers = append(r.customers, customer)
	return nil
}

func (r *CustomerRepository) FindFirst(id int) (model.Customer, error) {
	for _, customer := range r.customers {
		if customer.ID() == id {
			return customer, nil
		}
	}
	return model.Customer{}, model.ErrCustomerNotFound
}

func (r *CustomerRepository) ListAll() ([]model.Customer, error) {
	return append([]model.Customer(nil), r.customers...), nil
}
