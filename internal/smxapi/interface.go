// Package smxapi describes the SMx REST requests a scenario issues and the
// collaborator that sends them
package smxapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// HTTP methods used against the SMx REST API
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// Issuer sends one request to the SMx server. The transport behind it is
// owned by the load generator.
type Issuer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Logger defines the interface for logging SMx operations
type Logger interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string)
}

// Request is a single SMx REST call built from validated scenario records
type Request struct {
	Method string
	Route  string
	// Group is the name the request is reported under when requests are
	// grouped, e.g. "/config/device/olt1/vlan/[vlan_id]". Empty otherwise.
	Group string
	Body  map[string]interface{}
}

func (r Request) String() string {
	if len(r.Body) == 0 {
		return fmt.Sprintf("%s %s", r.Method, r.Route)
	}
	body, err := json.Marshal(r.Body)
	if err != nil {
		return fmt.Sprintf("%s %s %v", r.Method, r.Route, r.Body)
	}
	return fmt.Sprintf("%s %s %s", r.Method, r.Route, body)
}

// Response exposes what callers need from an SMx reply
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode <= 299
}
