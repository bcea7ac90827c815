package main

import (
	"context"
	"encoding/json"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"options-contracts-api/internal/config"
	"options-contracts-api/internal/handlers"
	"options-contracts-api/internal/logging"
	"options-contracts-api/pkg/lambda"
)

func init() {
	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	logging.Setup(cfg.Logging)
}

func handler(ctx context.Context, event json.RawMessage) (*lambda.Envelope, error) {
	container, err := lambda.GetContainerManager().GetContainer(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to initialize container")
		return nil, err
	}

	return handlers.NewOptionsHandler(container.OptionsService).HandleInvoke(ctx, event)
}

func main() {
	awslambda.Start(handler)
}
