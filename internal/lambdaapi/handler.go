// Package lambdaapi provides Lambda handler creation for AWS Lambda Function URLs,
// integrating the HTTP router with the Lambda runtime through the algnhsa adapter.
package lambdaapi

import (
	"github.com/actifly/api/internal/server"

	"github.com/akrylysov/algnhsa"
	"github.com/aws/aws-lambda-go/lambda"
)

// NewHandler creates a new Lambda handler serving the given router.
// It uses algnhsa to adapt the chi router to work with Lambda Function URLs.
func NewHandler(router *server.Router) lambda.Handler {
	return algnhsa.New(router.Handler(), nil)
}
