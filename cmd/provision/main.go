package main

import (
	"context"
	"flag"
	"log"

	"themefinder-backend/internal/provision"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

func main() {
	manifestPath := flag.String("manifest", "provision.yaml", "path to the provisioning manifest")
	flag.Parse()

	ctx := context.Background()

	manifest, err := provision.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(manifest.Region))
	if err != nil {
		logger.Fatal("Failed to load AWS configuration", zap.Error(err))
	}

	provisioner := provision.NewProvisioner(
		manifest,
		dynamodb.NewFromConfig(awsCfg),
		s3.NewFromConfig(awsCfg),
		lambda.NewFromConfig(awsCfg),
		apigateway.NewFromConfig(awsCfg),
		logger,
	)

	logger.Info("Setting up infrastructure")
	if err := provisioner.Run(ctx); err != nil {
		logger.Fatal("Infrastructure setup finished with failures", zap.Error(err))
	}
	logger.Info("Infrastructure setup completed")
}
