// The rawzone-lambda binary is the Lambda entry point deployed behind the raw
// zone's S3 event notifications. Each invocation starts the ad_etl Glue job
// and returns the result mapping to the runtime.
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/adlake/rawzone/internal/glue"
	"github.com/adlake/rawzone/internal/handler"
)

func main() {
	h := handler.New(func(ctx context.Context) (handler.Starter, error) {
		return glue.New(ctx)
	})
	lambda.Start(h.Handle)
}
