package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"poolcost/core/diff"
	"poolcost/core/pricing"
)

// RateTableRequest is the body of PUT .../rate-tables
type RateTableRequest struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	IsDefault bool   `json:"isDefault"`
	UpdatedBy string `json:"updatedBy,omitempty"`

	// Pricing is a partial rate-table document merged onto the defaults
	Pricing json.RawMessage `json:"pricing"`
}

// RateTableSummary describes a stored table without its document
type RateTableSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	IsDefault bool      `json:"isDefault"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RateTableResponse is a complete, merged rate table
type RateTableResponse struct {
	Meta        pricing.Meta   `json:"meta"`
	ContentHash string         `json:"contentHash"`
	Pricing     map[string]any `json:"pricing"`
}

// DiffRequest compares two revisions of a proposal
type DiffRequest struct {
	Base calculateRequest `json:"base"`
	Head calculateRequest `json:"head"`

	// Threshold is the smallest line movement reported, in dollars
	Threshold decimal.Decimal `json:"threshold"`
}

// DiffResponse is the cost movement between two revisions
type DiffResponse struct {
	Base    DiffSummary  `json:"base"`
	Head    DiffSummary  `json:"head"`
	Changes *diff.Result `json:"changes"`
}

// DiffSummary summarizes one side of a diff
type DiffSummary struct {
	InputHash   string          `json:"inputHash"`
	TotalCost   decimal.Decimal `json:"totalCost"`
	RetailPrice decimal.Decimal `json:"retailPrice"`
	Margin      decimal.Decimal `json:"grossProfitMargin"`
	RateTable   string          `json:"rateTableHash"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"requestId"`
}

// ErrorBody carries the typed error
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
