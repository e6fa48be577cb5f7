package transport

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"sales/pkg/domain/model"
	"sales/pkg/domain/service"
)

const requestIDHeader = "X-Request-ID"

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

type RecordSaleJSON struct {
	CustomerID int   `json:"customer_id"`
	ProductIDs []int `json:"product_ids"`
}

type SaleJSON struct {
	ID       int           `json:"id"`
	Customer CustomerJSON  `json:"customer"`
	Products []ProductJSON `json:"products"`
	Total    string        `json:"total"`
}

type errorJSON struct {
	Error string `json:"error"`
}

type Handler struct {
	sales service.SalesService
}

func Router(salesService service.SalesService) http.Handler {
	handler := &Handler{sales: salesService}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/customers", handler.addCustomer).Methods(http.MethodPost)
	s.HandleFunc("/customers", handler.listCustomers).Methods(http.MethodGet)
	s.HandleFunc("/products", handler.addProduct).Methods(http.MethodPost)
	s.HandleFunc("/products", handler.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/sales", handler.recordSale).Methods(http.MethodPost)
	s.HandleFunc("/sales", handler.listSales).Methods(http.MethodGet)

	return logMiddleware(r)
}

// addCustomer registers the customer in the body. An empty or null body is
// an absent customer and is accepted without registering anything.
func (h *Handler) addCustomer(w http.ResponseWriter, r *http.Request) {
	var body *CustomerJSON
	if err := decodeOptional(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if body == nil {
		h.sales.AddCustomer(model.None[model.Customer]())
		w.WriteHeader(http.StatusAccepted)
		return
	}

	h.sales.AddCustomer(model.Some(model.NewCustomer(body.ID, body.Name, body.Address)))
	writeJSON(w, http.StatusCreated, body)
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	var body *ProductJSON
	if err := decodeOptional(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if body == nil {
		h.sales.AddProduct(model.None[model.Product]())
		w.WriteHeader(http.StatusAccepted)
		return
	}

	h.sales.AddProduct(model.Some(model.NewProduct(body.ID, body.Name, body.Price)))
	writeJSON(w, http.StatusCreated, body)
}

func (h *Handler) listCustomers(w http.ResponseWriter, _ *http.Request) {
	customers, err := h.sales.Customers()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := make([]CustomerJSON, 0, len(customers))
	for _, customer := range customers {
		result = append(result, toCustomerJSON(customer))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) listProducts(w http.ResponseWriter, _ *http.Request) {
	products, err := h.sales.Catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductsJSON(products))
}

func (h *Handler) recordSale(w http.ResponseWriter, r *http.Request) {
	var body RecordSaleJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode sale"))
		return
	}

	sale, err := h.sales.RecordSale(body.CustomerID, body.ProductIDs)
	if errors.Is(err, model.ErrCustomerNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	log.WithFields(log.Fields{
		"saleID": sale.ID(),
		"total":  sale.Total().StringFixed(2),
	}).Info("sale recorded")
	writeJSON(w, http.StatusCreated, toSaleJSON(sale))
}

func (h *Handler) listSales(w http.ResponseWriter, _ *http.Request) {
	sales, err := h.sales.Sales()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	result := make([]SaleJSON, 0, len(sales))
	for _, sale := range sales {
		result = append(result, toSaleJSON(sale))
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeOptional[T any](r *http.Request, dst **T) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(b, dst), "decode body")
}

func toCustomerJSON(customer model.Customer) CustomerJSON {
	return CustomerJSON{ID: customer.ID(), Name: customer.Name(), Address: customer.Address()}
}

func toProductsJSON(products []model.Product) []ProductJSON {
	result := make([]ProductJSON, 0, len(products))
	for _, product := range products {
		result = append(result, ProductJSON{ID: product.ID(), Name: product.Name(), Price: product.Price()})
	}
	return result
}

func toSaleJSON(sale *model.Sale) SaleJSON {
	return SaleJSON{
		ID:       sale.ID(),
		Customer: toCustomerJSON(sale.Customer()),
		Products: toProductsJSON(sale.Products()),
		Total:    sale.Total().StringFixed(2),
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(b); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		log.WithFields(log.Fields{
			"requestID":  requestID,
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
