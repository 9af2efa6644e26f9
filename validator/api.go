package validator

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jonanatree/cardcheck/validator/models"
)

// maxBodyBytes caps a request body; a checkout form is a few short fields.
const maxBodyBytes = 4 << 10

// API is a HTTP API for the validation service
type API struct {
	validator *Service
}

func NewAPI(validator *Service) *API {
	return &API{
		validator: validator,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Route("/cards", func(r chi.Router) {
		r.Post("/validate", a.validateNumber)
		r.Post("/checkout", a.validateCheckout)
		r.Get("/brands", a.listBrands)
		r.Get("/brands/{brand}", a.getBrand)
	})
}

// validateNumber answers 200 for every decodable body; an invalid card
// number is a normal result, not a client error.
func (a *API) validateNumber(w http.ResponseWriter, r *http.Request) {
	req := models.ValidateRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, a.validator.ValidateNumber(r.Context(), req.Number))
}

func (a *API) validateCheckout(w http.ResponseWriter, r *http.Request) {
	req := models.CheckoutRequest{}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, a.validator.ValidateCheckout(r.Context(), req))
}

func (a *API) listBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.validator.Brands())
}

func (a *API) getBrand(w http.ResponseWriter, r *http.Request) {
	brand, err := a.validator.Brand(chi.URLParam(r, "brand"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, brand)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
