package server

import "github.com/agbru/ratenum/internal/rationals"

// TermResponse is the body of GET /rationals/{index}.
type TermResponse struct {
	Kind     string  `json:"kind"`
	Index    uint64  `json:"index"`
	Value    string  `json:"value"`
	Decimal  float64 `json:"decimal"`
	Duration string  `json:"duration"`
}

// TermsResponse is the body of GET /rationals.
type TermsResponse struct {
	Kind     string           `json:"kind"`
	Offset   uint64           `json:"offset"`
	Count    int              `json:"count"`
	Terms    []rationals.Term `json:"terms"`
	Duration string           `json:"duration"`
	// Error is set when the kind ran out of range before count terms.
	Error string `json:"error,omitempty"`
}

// KindsResponse is the body of GET /kinds.
type KindsResponse struct {
	Kinds []string `json:"kinds"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message describes what went wrong.
	Message string `json:"message,omitempty"`
}

// paramError is a query or path parameter that failed validation.
type paramError struct {
	Message string
}

func (e paramError) Error() string { return e.Message }
