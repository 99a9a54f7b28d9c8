package smxapi

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OperationResults tracks the outcome of a planned run
type OperationResults struct {
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     []string // "METHOD route" of each failure
	Errors             []error
}

// Options contains configuration options for the runner
type Options struct {
	DryRun bool
	Logger Logger
}

// Runner issues the steps of a plan in order
type Runner struct {
	issuer  Issuer
	options Options
}

// NewRunner creates a new runner
func NewRunner(issuer Issuer, options Options) *Runner {
	return &Runner{
		issuer:  issuer,
		options: options,
	}
}

// Run issues every step. Failed requests are recorded and the run goes on;
// a cancelled context stops it.
func (r *Runner) Run(ctx context.Context, plan *Plan) (*OperationResults, error) {
	results := &OperationResults{}
	if plan == nil {
		return results, nil
	}

	caser := cases.Title(language.Und)
	log := r.options.Logger

	log.Info(strings.Repeat("=", 50))
	if r.options.DryRun {
		log.Info(fmt.Sprintf("🧪 DRY RUN: Simulating %d SMx requests...", len(plan.Steps)))
	} else {
		log.Info(fmt.Sprintf("Starting %d SMx requests...", len(plan.Steps)))
	}

	current := ""
	for _, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		phase := step.Operation + " " + step.Family + " on " + step.Device
		if phase != current {
			current = phase
			log.Info(fmt.Sprintf("%s %s requests on device %s...",
				caser.String(step.Operation), step.Family, step.Device))
		}

		results.TotalRequests++
		if err := r.issue(ctx, step.Request); err != nil {
			log.Error(fmt.Sprintf("Failed %s: %v", step.Request, err))
			results.FailedRequests = append(results.FailedRequests, step.Request.Method+" "+step.Request.Route)
			results.Errors = append(results.Errors, err)
			continue
		}
		results.SuccessfulRequests++
	}

	log.Info(strings.Repeat("=", 50))
	log.Info("📊 Operation Summary:")
	log.Info(fmt.Sprintf("  Total requests: %d", results.TotalRequests))
	log.Info(fmt.Sprintf("  Successful requests: %d", results.SuccessfulRequests))
	log.Info(fmt.Sprintf("  Failed requests: %d", len(results.FailedRequests)))
	if len(results.FailedRequests) > 0 {
		log.Warn(fmt.Sprintf("  Failed: %s", strings.Join(results.FailedRequests, ", ")))
	}

	return results, nil
}

func (r *Runner) issue(ctx context.Context, req Request) error {
	resp, err := r.issuer.Do(ctx, req)
	if err != nil {
		return err
	}
	if !resp.OK() {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return fmt.Errorf("%s %s returned status %d", req.Method, req.Route, status)
	}
	return nil
}
