package models

import "github.com/jonanatree/cardcheck/internal/cardcheck"

type ValidateRequest struct {
	Number string `json:"number"`
}

// NumberResult is what the card-number field renders: a logo, a formatted
// value and an error state.
type NumberResult struct {
	Brand     cardcheck.Brand `json:"brand"`
	IsValid   bool            `json:"is_valid"`
	Formatted string          `json:"formatted"`
	Masked    string          `json:"masked"`
	Last4     string          `json:"last4"`
}

type CheckoutRequest struct {
	Number       string `json:"number"`
	Expiry       string `json:"expiry"`
	SecurityCode string `json:"security_code"`
}

type CheckoutResult struct {
	Number            NumberResult `json:"number"`
	ExpiryValid       bool         `json:"expiry_valid"`
	Expired           bool         `json:"expired"`
	SecurityCodeValid bool         `json:"security_code_valid"`
	SecurityCodeName  string       `json:"security_code_name"`
	IsValid           bool         `json:"is_valid"`
}

type Brand struct {
	Name             cardcheck.Brand `json:"name"`
	Pattern          string          `json:"pattern"`
	Lengths          []int           `json:"lengths"`
	Groups           []int           `json:"groups"`
	SecurityCodeName string          `json:"security_code_name"`
	SecurityCodeSize int             `json:"security_code_size"`
}
