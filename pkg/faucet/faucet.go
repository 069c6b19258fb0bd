// Package faucet defines the request and response surface of the token
// faucet. The response status is a closed vocabulary consumed by
// clients, so each constant here is part of the wire contract.
package faucet

import "net/http"

// Status values returned in faucet responses. Success is the only one
// that maps to HTTP 200; every other status is a 400 with the reason
// encoded in the body rather than the HTTP layer.
const (
	StatusSuccess        = "success"
	StatusParseError     = "parse-error"
	StatusInvalidNetwork = "invalid-network"
	StatusInvalidAddress = "invalid-address"
	StatusRateLimit      = "rate-limit"
	StatusNonceError     = "nonce-error"
	StatusBroadcastError = "broadcast-error"
)

// Request is the body of a faucet request.
type Request struct {
	Address string `json:"address"`
	Network string `json:"network"`
}

// Message carries success payload details.
type Message struct {
	PaymentID string `json:"paymentID"`
}

// Response is the body of every faucet reply, success or failure.
type Response struct {
	Status  string   `json:"status"`
	Message *Message `json:"message,omitempty"`
}

// HTTPStatus maps a response status to its HTTP status code.
func (r *Response) HTTPStatus() int {
	if r.Status == StatusSuccess {
		return http.StatusOK
	}
	return http.StatusBadRequest
}

// NetworkInfo describes one configured network for the listing endpoint.
// Amounts are in nanomina.
type NetworkInfo struct {
	ID           string `json:"id"`
	PayoutAmount int64  `json:"payoutAmount"`
	Fee          int64  `json:"fee"`
}

// NetworkStatus is one network's entry in the status report.
type NetworkStatus struct {
	ID           string `json:"id"`
	GrantsIssued int    `json:"grantsIssued"`
	NextNonce    int64  `json:"nextNonce"`
}

// StatusResponse reports operational state across all networks.
type StatusResponse struct {
	Networks []NetworkStatus `json:"networks"`
}
