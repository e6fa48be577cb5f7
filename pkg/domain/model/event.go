package model

import "github.com/shopspring/decimal"

type CustomerRegistered struct {
	CustomerID int
	Name       string
}

func (e CustomerRegistered) Type() string { return "CustomerRegistered" }

type ProductRegistered struct {
	ProductID int
	Name      string
	Price     decimal.Decimal
}

func (e ProductRegistered) Type() string { return "ProductRegistered" }

type CustomerNotFound struct {
	CustomerID int
}

func (e CustomerNotFound) Type() string { return "CustomerNotFound" }

type ProductNotFound struct {
	SaleID    int
	ProductID int
}

func (e ProductNotFound) Type() string { return "ProductNotFound" }

type SaleCompleted struct {
	SaleID     int
	CustomerID int
	ItemCount  int
	Total      decimal.Decimal
}

func (e SaleCompleted) Type() string { return "SaleCompleted" }
