// Package broadcast submits signed payments to a network's
// ledger-broadcast endpoint and classifies the response.
package broadcast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/mina-faucet/pkg/payment"
)

// Outcome classifies a broadcast attempt.
type Outcome int

const (
	// OutcomeAccepted means the ledger accepted the payment (HTTP 201).
	OutcomeAccepted Outcome = iota
	// OutcomeRejectedWithNonce means the ledger rejected the payment and
	// reported an authoritative nonce in its error message.
	OutcomeRejectedWithNonce
	// OutcomeRejected means the ledger rejected the payment with no
	// usable nonce hint.
	OutcomeRejected
	// OutcomeUnreachable means the endpoint could not be reached at all
	// (transport error or timeout). Distinct from a rejection: the
	// ledger never saw the payment.
	OutcomeUnreachable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejectedWithNonce:
		return "rejected-with-nonce"
	case OutcomeRejected:
		return "rejected"
	case OutcomeUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Result is the classified outcome of one broadcast attempt.
type Result struct {
	Outcome Outcome
	// PaymentID is the ledger-assigned payment hash, set when Outcome
	// is OutcomeAccepted.
	PaymentID string
	// InferredNonce is the authoritative nonce parsed from the error
	// response, set when Outcome is OutcomeRejectedWithNonce.
	InferredNonce int64
	// RawError carries the ledger's error string (or the transport
	// error) for logging.
	RawError string
}

// maxResponseBody bounds how much of a broadcast response is read.
const maxResponseBody = 1 << 20

// Client posts signed payments to ledger-broadcast endpoints.
type Client struct {
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a broadcast client with a bounded per-request
// timeout so a stalled ledger endpoint cannot hold requests open.
func NewClient(requestTimeout time.Duration, logger *zap.Logger) *Client {
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type acceptedResponse struct {
	Result struct {
		Payment struct {
			Hash string `json:"hash"`
		} `json:"payment"`
	} `json:"result"`
}

type rejectedResponse struct {
	Error string `json:"error"`
}

// Broadcast posts the signed payment to {endpoint}/broadcast/transaction
// and classifies the response. Transport failures come back as
// OutcomeUnreachable, not as an error: only request construction or
// encoding problems return a non-nil error.
func (c *Client) Broadcast(ctx context.Context, endpoint string, signed *payment.SignedPayment) (*Result, error) {
	body, err := json.Marshal(signed)
	if err != nil {
		return nil, fmt.Errorf("encode signed payment: %w", err)
	}

	url := endpoint + "/broadcast/transaction"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build broadcast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Broadcast endpoint unreachable",
			zap.String("url", url),
			zap.Error(err),
		)
		return &Result{Outcome: OutcomeUnreachable, RawError: err.Error()}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &Result{Outcome: OutcomeUnreachable, RawError: err.Error()}, nil
	}

	if resp.StatusCode == http.StatusCreated {
		return c.classifyAccepted(respBody), nil
	}
	return c.classifyRejected(resp.StatusCode, respBody), nil
}

func (c *Client) classifyAccepted(body []byte) *Result {
	var accepted acceptedResponse
	if err := json.Unmarshal(body, &accepted); err != nil {
		c.logger.Warn("Broadcast accepted but response body did not parse",
			zap.Error(err),
		)
	}
	return &Result{
		Outcome:   OutcomeAccepted,
		PaymentID: accepted.Result.Payment.Hash,
	}
}

func (c *Client) classifyRejected(status int, body []byte) *Result {
	var rejected rejectedResponse
	if err := json.Unmarshal(body, &rejected); err != nil {
		// Free-text error bodies still get scanned for a nonce hint.
		rejected.Error = string(body)
	}

	c.logger.Info("Broadcast rejected",
		zap.Int("http_status", status),
		zap.String("ledger_error", rejected.Error),
	)

	if nonce, ok := ParseInferredNonce(rejected.Error); ok {
		return &Result{
			Outcome:       OutcomeRejectedWithNonce,
			InferredNonce: nonce,
			RawError:      rejected.Error,
		}
	}
	return &Result{Outcome: OutcomeRejected, RawError: rejected.Error}
}
