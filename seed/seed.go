package seed

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"sales/pkg/domain/model"
)

type CustomerJSON struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type ProductJSON struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Seed is the content of a seed file: customers and products registered at
// startup, in file order.
type Seed struct {
	Customers []CustomerJSON `json:"customers"`
	Products  []ProductJSON  `json:"products"`
}

type Registrar interface {
	AddCustomer(customer model.Maybe[model.Customer])
	AddProduct(product model.Maybe[model.Product])
}

func Load(filePath string) (*Seed, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var data Seed
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrapf(err, "parse seed file %s", filePath)
	}
	return &data, nil
}

func (s *Seed) Apply(registrar Registrar) {
	for _, c := range s.Customers {
		registrar.AddCustomer(model.Some(model.NewCustomer(c.ID, c.Name, c.Address)))
	}
	for _, p := range s.Products {
		registrar.AddProduct(model.Some(model.NewProduct(p.ID, p.Name, p.Price)))
	}
}

// Demo is the reference store used by the demo command when no seed file is
// given.
func Demo() *Seed {
	return &Seed{
		Customers: []CustomerJSON{
			{ID: 1, Name: "Ana", Address: "Calle 1"},
		},
		Products: []ProductJSON{
			{ID: 1, Name: "Pan", Price: decimal.RequireFromString("2.50")},
			{ID: 2, Name: "Leche", Price: decimal.RequireFromString("3.00")},
		},
	}
}
