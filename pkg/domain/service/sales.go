package service

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sales/pkg/common/domain"
	"sales/pkg/domain/model"
)

const firstSaleID = 1

type SalesService interface {
	AddCustomer(customer model.Maybe[model.Customer])
	AddProduct(product model.Maybe[model.Product])
	RecordSale(customerID int, productIDs []int) (*model.Sale, error)

	Customers() ([]model.Customer, error)
	Catalog() ([]model.Product, error)
	Sales() ([]*model.Sale, error)
	NextSaleID() int
}

func NewSalesService(
	customers model.CustomerRepository,
	catalog model.ProductRepository,
	sales model.SaleRepository,
	dispatcher domain.EventDispatcher,
) SalesService {
	return &salesService{
		customers:  customers,
		catalog:    catalog,
		sales:      sales,
		dispatcher: dispatcher,
		nextSaleID: firstSaleID,
	}
}

// salesService serializes every operation on mu, so a sale is recorded
// atomically with respect to registrations and other sales.
type salesService struct {
	mu         sync.Mutex
	customers  model.CustomerRepository
	catalog    model.ProductRepository
	sales      model.SaleRepository
	dispatcher domain.EventDispatcher
	nextSaleID int
}

func (s *salesService) AddCustomer(customer model.Maybe[model.Customer]) {
	c, ok := customer.Get()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.customers.Store(c); err != nil {
		log.WithError(err).WithField("customerID", c.ID()).Error("failed to store customer")
		return
	}
	s.dispatch(model.CustomerRegistered{CustomerID: c.ID(), Name: c.Name()})
}

func (s *salesService) AddProduct(product model.Maybe[model.Product]) {
	p, ok := product.Get()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Store(p); err != nil {
		log.WithError(err).WithField("productID", p.ID()).Error("failed to store product")
		return
	}
	s.dispatch(model.ProductRegistered{ProductID: p.ID(), Name: p.Name(), Price: p.Price()})
}

// RecordSale creates a sale for the first customer registered under
// customerID. Unknown product ids are reported and skipped; the sale is
// stored even when none of them resolve. An unknown customer is reported,
// returned as model.ErrCustomerNotFound and leaves the sale counter as is.
// A storage failure after the customer resolved returns the error without
// storing the sale or reporting completion; its sale id stays used.
func (s *salesService) RecordSale(customerID int, productIDs []int) (*model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, found, err := s.findCustomerByID(customerID)
	if err != nil {
		return nil, err
	}
	if !found {
		s.dispatch(model.CustomerNotFound{CustomerID: customerID})
		return nil, model.ErrCustomerNotFound
	}

	sale := model.NewSale(s.nextSaleID, customer)
	s.nextSaleID++

	for _, productID := range productIDs {
		product, found, err := s.findProductByID(productID)
		if err != nil {
			return nil, err
		}
		if !found {
			s.dispatch(model.ProductNotFound{SaleID: sale.ID(), ProductID: productID})
			continue
		}
		sale.AddProduct(product)
	}

	if err := s.sales.Store(sale); err != nil {
		return nil, errors.Wrapf(err, "store sale %d", sale.ID())
	}

	s.dispatch(model.SaleCompleted{
		SaleID:     sale.ID(),
		CustomerID: customer.ID(),
		ItemCount:  len(sale.Products()),
		Total:      sale.Total(),
	})
	return sale, nil
}

func (s *salesService) Customers() ([]model.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers.ListAll()
}

func (s *salesService) Catalog() ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.ListAll()
}

func (s *salesService) Sales() ([]*model.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sales.ListAll()
}

func (s *salesService) NextSaleID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextSaleID
}

func (s *salesService) findCustomerByID(id int) (model.Customer, bool, error) {
	customer, err := s.customers.FindFirst(id)
	if errors.Is(err, model.ErrCustomerNotFound) {
		return model.Customer{}, false, nil
	}
	if err != nil {
		return model.Customer{}, false, errors.Wrapf(err, "find customer %d", id)
	}
	return customer, true, nil
}

func (s *salesService) findProductByID(id int) (model.Product, bool, error) {
	product, err := s.catalog.FindFirst(id)
	if errors.Is(err, model.ErrProductNotFound) {
		return model.Product{}, false, nil
	}
	if err != nil {
		return model.Product{}, false, errors.Wrapf(err, "find product %d", id)
	}
	return product, true, nil
}

func (s *salesService) dispatch(event domain.Event) {
	if err := s.dispatcher.Dispatch(event); err != nil {
		log.WithError(err).WithField("event", event.Type()).Error("failed to dispatch event")
	}
}
