// Package glue adapts the AWS Glue SDK to the handler's Starter contract.
package glue

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsglue "github.com/aws/aws-sdk-go-v2/service/glue"
)

// api is the slice of the Glue SDK the client uses.
type api interface {
	StartJobRun(ctx context.Context, params *awsglue.StartJobRunInput, optFns ...func(*awsglue.Options)) (*awsglue.StartJobRunOutput, error)
}

// Client starts Glue job runs. Credentials and region come entirely from the
// ambient environment (lambda role, env vars, shared config).
type Client struct {
	api api
}

// New loads the default AWS configuration and returns a Client.
func New(ctx context.Context) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &Client{api: awsglue.NewFromConfig(cfg)}, nil
}

// StartJobRun asks Glue to start the named job and returns the run ID assigned
// by the service. The call returns once Glue accepts the start request; it
// does not wait for the job itself.
func (c *Client) StartJobRun(ctx context.Context, jobName string) (string, error) {
	out, err := c.api.StartJobRun(ctx, &awsglue.StartJobRunInput{
		JobName: aws.String(jobName),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.JobRunId), nil
}
