package smxapi

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// DryRunIssuer implements Issuer without contacting a server. Every request
// is logged and answered with 200.
type DryRunIssuer struct {
	logger Logger

	mu   sync.Mutex
	sent []Request
}

// NewDryRunIssuer creates a new dry-run issuer
func NewDryRunIssuer(logger Logger) *DryRunIssuer {
	return &DryRunIssuer{
		logger: logger,
	}
}

// Do records req and returns an empty 200 response
func (d *DryRunIssuer) Do(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.logger.Debug(fmt.Sprintf("DRY RUN: Would send: %s", req))

	d.mu.Lock()
	d.sent = append(d.sent, req)
	d.mu.Unlock()

	return &Response{StatusCode: http.StatusOK}, nil
}

// Sent returns the requests seen so far in the order they arrived
func (d *DryRunIssuer) Sent() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Request, len(d.sent))
	copy(out, d.sent)
	return out
}
