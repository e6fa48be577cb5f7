package memory

import "sales/pkg/domain/model"

var _ model.ProductRepository = &ProductRepository{}

type ProductRepository struct {
	products []model.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) Store(product model.Product) error {
	r.products = append(r.products, product)
	return nil
}

func (r *ProductRepository) FindFirst(id int) (model.Product, error) {
	for _, product := range r.products {
		if product.ID() == id {
			return product, nil
		}
	}
	return model.Product{}, model.ErrProductNotFound
}

func (r *ProductRepository) ListAll() ([]model.Product, error) {
	return append([]model.Product(nil), r.products...), nil
}
