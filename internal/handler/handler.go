// Package handler implements the ad_etl trigger: a total operation that asks
// AWS Glue to start the ad_etl job and reports the outcome as a result
// mapping. It never returns an error to the invoker — every failure is folded
// into the Failure variant of the result.
package handler

import (
	"context"
	"encoding/json"
)

// JobName is the Glue job this handler starts. It is fixed: which job runs is
// a property of the deployment, not of the triggering event.
const JobName = "ad_etl"

// Result mapping keys and messages. The shape is part of the invocation
// contract: callers see exactly one of JobRunId or Error, plus Message.
const (
	KeyJobRunID = "JobRunId"
	KeyError    = "Error"
	KeyMessage  = "Message"

	successMessage = "Glue job for " + JobName + " started successfully"
	failureMessage = "Failed to start Glue job"
)

// Starter starts a named Glue job run and returns the service-assigned run ID.
type Starter interface {
	StartJobRun(ctx context.Context, jobName string) (string, error)
}

// StarterFactory acquires a Starter for a single invocation. Acquisition
// failures are reported the same way as start failures.
type StarterFactory func(ctx context.Context) (Starter, error)

// Handler triggers the ad_etl job on each invocation.
type Handler struct {
	newStarter StarterFactory
}

// New creates a Handler that acquires its Glue client through newStarter.
func New(newStarter StarterFactory) *Handler {
	return &Handler{newStarter: newStarter}
}

// Handle requests a start of the ad_etl job and returns the result mapping.
// The event payload is accepted for the invocation contract but never read.
// The error return is always nil: failures surface only through the Error key.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (map[string]string, error) {
	client, err := h.newStarter(ctx)
	if err != nil {
		return failure(err), nil
	}

	runID, err := client.StartJobRun(ctx, JobName)
	if err != nil {
		return failure(err), nil
	}

	return map[string]string{
		KeyJobRunID: runID,
		KeyMessage:  successMessage,
	}, nil
}

func failure(err error) map[string]string {
	return map[string]string{
		KeyError:   err.Error(),
		KeyMessage: failureMessage,
	}
}
