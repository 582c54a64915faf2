package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	apigatewaytypes "github.com/aws/aws-sdk-go-v2/service/apigateway/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	dynamodbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTableCreator struct {
	err   error
	calls int
	input *dynamodb.CreateTableInput
}

func (f *fakeTableCreator) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.CreateTableOutput{}, nil
}

type fakeBucketCreator struct {
	err   error
	calls int
	input *s3.CreateBucketInput
}

func (f *fakeBucketCreator) CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.CreateBucketOutput{}, nil
}

type fakeFunctionCreator struct {
	err   error
	calls int
	input *lambda.CreateFunctionInput
}

func (f *fakeFunctionCreator) CreateFunction(ctx context.Context, in *lambda.CreateFunctionInput, optFns ...func(*lambda.Options)) (*lambda.CreateFunctionOutput, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &lambda.CreateFunctionOutput{}, nil
}

type fakeAPICreator struct {
	err   error
	calls int
}

func (f *fakeAPICreator) CreateRestApi(ctx context.Context, in *apigateway.CreateRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.CreateRestApiOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &apigateway.CreateRestApiOutput{Id: aws.String("api-123")}, nil
}

func writeZip(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lambda_function.zip")
	require.NoError(t, os.WriteFile(path, []byte("PK\x03\x04fake"), 0o644))
	return path
}

func testManifest(t *testing.T) Manifest {
	m := DefaultManifest()
	m.Region = "eu-west-1"
	m.RoleARN = "arn:aws:iam::123456789012:role/test"
	m.CodePath = writeZip(t)
	return m
}

func newTestProvisioner(t *testing.T, m Manifest) (*Provisioner, *fakeTableCreator, *fakeBucketCreator, *fakeFunctionCreator, *fakeAPICreator) {
	t.Helper()
	tables := &fakeTableCreator{}
	buckets := &fakeBucketCreator{}
	functions := &fakeFunctionCreator{}
	apis := &fakeAPICreator{}
	p := NewProvisioner(m, tables, buckets, functions, apis, zap.NewNop())
	return p, tables, buckets, functions, apis
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("FreshAccountCreatesEverything", func(t *testing.T) {
		p, tables, buckets, functions, apis := newTestProvisioner(t, testManifest(t))

		require.NoError(t, p.Run(ctx))
		assert.Equal(t, 1, tables.calls)
		assert.Equal(t, 1, buckets.calls)
		assert.Equal(t, 1, functions.calls)
		assert.Equal(t, 1, apis.calls)
	})

	t.Run("AlreadyExistingResourcesAreSuccess", func(t *testing.T) {
		p, tables, buckets, functions, apis := newTestProvisioner(t, testManifest(t))
		tables.err = &dynamodbtypes.ResourceInUseException{Message: aws.String("table exists")}
		buckets.err = &s3types.BucketAlreadyOwnedByYou{}
		functions.err = &lambdatypes.ResourceConflictException{Message: aws.String("function exists")}
		apis.err = &apigatewaytypes.ConflictException{Message: aws.String("api exists")}

		assert.NoError(t, p.Run(ctx))
	})

	t.Run("StepFailureDoesNotStopLaterSteps", func(t *testing.T) {
		p, tables, _, functions, apis := newTestProvisioner(t, testManifest(t))
		tables.err = errors.New("access denied")

		err := p.Run(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "table")
		assert.Equal(t, 1, functions.calls)
		assert.Equal(t, 1, apis.calls)
	})
}

func TestEnsureTable(t *testing.T) {
	ctx := context.Background()

	t.Run("NumericIDHashKeyOnDemand", func(t *testing.T) {
		p, tables, _, _, _ := newTestProvisioner(t, testManifest(t))

		require.NoError(t, p.EnsureTable(ctx))
		require.NotNil(t, tables.input)
		assert.Equal(t, "Movies", aws.ToString(tables.input.TableName))
		require.Len(t, tables.input.KeySchema, 1)
		assert.Equal(t, "id", aws.ToString(tables.input.KeySchema[0].AttributeName))
		assert.Equal(t, dynamodbtypes.ScalarAttributeTypeN, tables.input.AttributeDefinitions[0].AttributeType)
		assert.Equal(t, dynamodbtypes.BillingModePayPerRequest, tables.input.BillingMode)
	})

	t.Run("OtherErrorsPropagate", func(t *testing.T) {
		p, tables, _, _, _ := newTestProvisioner(t, testManifest(t))
		tables.err = errors.New("throttled")

		assert.Error(t, p.EnsureTable(ctx))
	})
}

func TestEnsureBucket(t *testing.T) {
	ctx := context.Background()

	t.Run("RegionalBucketGetsLocationConstraint", func(t *testing.T) {
		p, _, buckets, _, _ := newTestProvisioner(t, testManifest(t))

		require.NoError(t, p.EnsureBucket(ctx))
		require.NotNil(t, buckets.input.CreateBucketConfiguration)
		assert.Equal(t, s3types.BucketLocationConstraint("eu-west-1"),
			buckets.input.CreateBucketConfiguration.LocationConstraint)
	})

	t.Run("UsEast1OmitsLocationConstraint", func(t *testing.T) {
		m := testManifest(t)
		m.Region = "us-east-1"
		p, _, buckets, _, _ := newTestProvisioner(t, m)

		require.NoError(t, p.EnsureBucket(ctx))
		assert.Nil(t, buckets.input.CreateBucketConfiguration)
	})

	t.Run("NameTakenByAnotherAccountIsAnError", func(t *testing.T) {
		p, _, buckets, _, _ := newTestProvisioner(t, testManifest(t))
		buckets.err = &s3types.BucketAlreadyExists{}

		err := p.EnsureBucket(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already taken")
	})
}

func TestEnsureFunction(t *testing.T) {
	ctx := context.Background()

	t.Run("PassesTableNameAndCredentialEnvironment", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		p, _, _, functions, _ := newTestProvisioner(t, testManifest(t))

		require.NoError(t, p.EnsureFunction(ctx))
		require.NotNil(t, functions.input)
		env := functions.input.Environment.Variables
		assert.Equal(t, "Movies", env["MOVIE_TABLE"])
		assert.Equal(t, "sk-test", env["OPENAI_API_KEY"])
		assert.NotEmpty(t, functions.input.Code.ZipFile)
	})

	t.Run("MissingDeploymentPackageIsAnError", func(t *testing.T) {
		m := testManifest(t)
		m.CodePath = filepath.Join(t.TempDir(), "absent.zip")
		p, _, _, functions, _ := newTestProvisioner(t, m)

		require.Error(t, p.EnsureFunction(ctx))
		assert.Equal(t, 0, functions.calls)
	})
}
