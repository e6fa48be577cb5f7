package memory

import "sales/pkg/domain/model"

var _ model.SaleRepository = &SaleRepository{}

type SaleRepository struct {
	sales []*model.Sale
}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) Store(sale *model.Sale) error {
	r.sales = append(r.sales, sale)
	return nil
}

func (r *SaleRepository) ListAll() ([]*model.Sale, error) {
	return append([]*model.Sale(nil), r.sales...), nil
}
