package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"camp-signup-api/pkg/lambda"
)

func main() {
	manager := lambda.NewConnectionManager(nil)
	defer manager.Cleanup()

	awslambda.Start(manager.Handle)
}
