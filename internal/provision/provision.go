// Package provision creates the cloud resources the service depends on:
// the movie table, the theme-song bucket, the Lambda function, and the API
// Gateway entry. Every operation treats "already exists" as success so the
// tool can be re-run safely.
package provision

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	apigatewaytypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"
)

// Narrow client interfaces keep each step testable with fakes.

type TableCreator interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

type BucketCreator interface {
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

type FunctionCreator interface {
	CreateFunction(ctx context.Context, in *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error)
}

type APICreator interface {
	CreateRestApi(ctx context.Context, in *apigateway.CreateRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateRestApiOutput, error)
}

// Provisioner executes the provisioning steps in order, logging each
// outcome and continuing past step failures.
type Provisioner struct {
	manifest   Manifest
	dynamodb   TableCreator
	s3         BucketCreator
	lambda     FunctionCreator
	apigateway APICreator
	logger     *zap.Logger
}

// NewProvisioner creates a provisioner over the given service clients.
func NewProvisioner(
	manifest Manifest,
	tables TableCreator,
	buckets BucketCreator,
	functions FunctionCreator,
	apis APICreator,
	logger *zap.Logger,
) *Provisioner {
	return &Provisioner{
		manifest:   manifest,
		dynamodb:   tables,
		s3:         buckets,
		lambda:     functions,
		apigateway: apis,
		logger:     logger,
	}
}

// Run executes every provisioning step. Individual failures are logged and
// collected; the aggregate error is returned after all steps ran.
func (p *Provisioner) Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"table", p.EnsureTable},
		{"bucket", p.EnsureBucket},
		{"function", p.EnsureFunction},
		{"api", p.EnsureAPI},
	}

	var errs []error
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			p.logger.Error("provisioning step failed",
				zap.String("step", step.name),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", step.name, err))
		}
	}
	return errors.Join(errs...)
}

// EnsureTable creates the movie table with the numeric id hash key and
// on-demand billing.
func (p *Provisioner) EnsureTable(ctx context.Context) error {
	_, err := p.dynamodb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(p.manifest.TableName),
		KeySchema: []dynamodbtypes.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: dynamodbtypes.KeyTypeHash},
		},
		AttributeDefinitions: []dynamodbtypes.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: dynamodbtypes.ScalarAttributeTypeN},
		},
		BillingMode: dynamodbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *dynamodbtypes.ResourceInUseException
		if errors.As(err, &inUse) {
			p.logger.Info("DynamoDB table already exists", zap.String("table", p.manifest.TableName))
			return nil
		}
		return err
	}

	p.logger.Info("DynamoDB table created", zap.String("table", p.manifest.TableName))
	return nil
}

// EnsureBucket creates the theme-song bucket.
func (p *Provisioner) EnsureBucket(ctx context.Context) error {
	input := &s3.CreateBucketInput{Bucket: aws.String(p.manifest.BucketName)}
	// us-east-1 rejects an explicit location constraint.
	if p.manifest.Region != "" && p.manifest.Region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(p.manifest.Region),
		}
	}

	_, err := p.s3.CreateBucket(ctx, input)
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			p.logger.Info("S3 bucket already exists", zap.String("bucket", p.manifest.BucketName))
			return nil
		}
		var taken *s3types.BucketAlreadyExists
		if errors.As(err, &taken) {
			return fmt.Errorf("bucket name %q is already taken by another account", p.manifest.BucketName)
		}
		return err
	}

	p.logger.Info("S3 bucket created", zap.String("bucket", p.manifest.BucketName))
	return nil
}

// EnsureFunction deploys the Lambda function from the manifest's zip file,
// passing through the table name and OpenAI credential as environment.
func (p *Provisioner) EnsureFunction(ctx context.Context) error {
	zipData, err := os.ReadFile(p.manifest.CodePath)
	if err != nil {
		return fmt.Errorf("failed to read deployment package: %w", err)
	}

	_, err = p.lambda.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: aws.String(p.manifest.FunctionName),
		Runtime:      lambdatypes.Runtime(p.manifest.Runtime),
		Role:         aws.String(p.manifest.RoleARN),
		Handler:      aws.String(p.manifest.Handler),
		Code:         &lambdatypes.FunctionCode{ZipFile: zipData},
		Environment: &lambdatypes.Environment{
			Variables: map[string]string{
				"MOVIE_TABLE":    p.manifest.TableName,
				"OPENAI_API_KEY": os.Getenv("OPENAI_API_KEY"),
			},
		},
	})
	if err != nil {
		var conflict *lambdatypes.ResourceConflictException
		if errors.As(err, &conflict) {
			p.logger.Info("Lambda function already exists", zap.String("function", p.manifest.FunctionName))
			return nil
		}
		return err
	}

	p.logger.Info("Lambda function deployed", zap.String("function", p.manifest.FunctionName))
	return nil
}

// EnsureAPI creates the API Gateway REST API entry.
func (p *Provisioner) EnsureAPI(ctx context.Context) error {
	result, err := p.apigateway.CreateRestApi(ctx, &apigateway.CreateRestApiInput{
		Name:        aws.String(p.manifest.APIName),
		Description: aws.String("API for Movie Theme Song Finder"),
	})
	if err != nil {
		var conflict *apigatewaytypes.ConflictException
		if errors.As(err, &conflict) {
			p.logger.Info("API Gateway entry already exists", zap.String("api", p.manifest.APIName))
			return nil
		}
		return err
	}

	p.logger.Info("API Gateway created",
		zap.String("api", p.manifest.APIName),
		zap.String("api_id", aws.ToString(result.Id)),
	)
	return nil
}
