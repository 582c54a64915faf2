// Package ddb implements the repository interface using AWS DynamoDB.
// This is the only layer that should have knowledge of DynamoDB specifics.
package ddb

import (
	"context"
	"errors"
	"strconv"

	"themefinder-backend/internal/domain"
	"themefinder-backend/internal/repository"
	appErrors "themefinder-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ddbRepository is the concrete implementation for DynamoDB. The table uses
// the movie id as a numeric hash key; the item shape is exactly the
// domain.Movie attributevalue encoding.
type ddbRepository struct {
	dbClient  *dynamodb.Client
	tableName string
}

// NewRepository creates a new instance of the DynamoDB repository.
func NewRepository(dbClient *dynamodb.Client, tableName string) repository.MovieRepository {
	return &ddbRepository{
		dbClient:  dbClient,
		tableName: tableName,
	}
}

func movieKey(id int) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: strconv.Itoa(id)},
	}
}

// FindByID retrieves a single movie by its id.
func (r *ddbRepository) FindByID(ctx context.Context, id int) (*domain.Movie, error) {
	result, err := r.dbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       movieKey(id),
	})
	if err != nil {
		return nil, appErrors.NewUpstream("failed to get movie from store", err)
	}
	if result.Item == nil {
		return nil, appErrors.NewNotFound("movie not found")
	}

	var movie domain.Movie
	if err := attributevalue.UnmarshalMap(result.Item, &movie); err != nil {
		return nil, appErrors.NewInternal("failed to unmarshal movie item", err)
	}
	return &movie, nil
}

// Scan performs a full-table scan, pushing the substring filters down as a
// DynamoDB filter expression. A zero filter scans unfiltered.
func (r *ddbRepository) Scan(ctx context.Context, filter repository.Filter) ([]domain.Movie, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}

	if !filter.IsZero() {
		expr, err := expression.NewBuilder().WithFilter(buildFilterCondition(filter)).Build()
		if err != nil {
			return nil, appErrors.NewInternal("failed to build filter expression", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	return r.scanAll(ctx, input)
}

// FindByYear scans for movies with an exact release year.
func (r *ddbRepository) FindByYear(ctx context.Context, year int) ([]domain.Movie, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Equal(expression.Name("year"), expression.Value(year))).
		Build()
	if err != nil {
		return nil, appErrors.NewInternal("failed to build year expression", err)
	}

	return r.scanAll(ctx, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
}

// Put upserts a movie item by id.
func (r *ddbRepository) Put(ctx context.Context, movie domain.Movie) error {
	item, err := attributevalue.MarshalMap(movie)
	if err != nil {
		return appErrors.NewInternal("failed to marshal movie item", err)
	}

	_, err = r.dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return appErrors.NewUpstream("failed to put movie into store", err)
	}
	return nil
}

// UpdateSummary sets the summary field, write-once. The condition closes the
// race where two concurrent requests both generated a summary: the first
// write wins and later writers get ErrSummaryExists.
func (r *ddbRepository) UpdateSummary(ctx context.Context, id int, summary string) error {
	update := expression.Set(expression.Name("summary"), expression.Value(summary))
	condition := expression.AttributeNotExists(expression.Name("summary"))

	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(condition).Build()
	if err != nil {
		return appErrors.NewInternal("failed to build update expression", err)
	}

	_, err = r.dbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       movieKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return repository.ErrSummaryExists
		}
		return appErrors.NewUpstream("failed to update movie summary", err)
	}
	return nil
}

// scanAll drains every page of a scan.
func (r *ddbRepository) scanAll(ctx context.Context, input *dynamodb.ScanInput) ([]domain.Movie, error) {
	var movies []domain.Movie

	paginator := dynamodb.NewScanPaginator(r.dbClient, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, appErrors.NewUpstream("failed to scan movie table", err)
		}

		var pageMovies []domain.Movie
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageMovies); err != nil {
			return nil, appErrors.NewInternal("failed to unmarshal scanned items", err)
		}
		movies = append(movies, pageMovies...)
	}

	return movies, nil
}

// buildFilterCondition ANDs a contains() test per supplied filter field.
// Nested theme song fields address the document path directly.
func buildFilterCondition(filter repository.Filter) expression.ConditionBuilder {
	var conds []expression.ConditionBuilder

	if filter.Title != "" {
		conds = append(conds, expression.Contains(expression.Name("title"), filter.Title))
	}
	if filter.Genre != "" {
		conds = append(conds, expression.Contains(expression.Name("genre"), filter.Genre))
	}
	if filter.Artist != "" {
		conds = append(conds, expression.Contains(expression.Name("theme_song.artist"), filter.Artist))
	}
	if filter.ThemeSongTitle != "" {
		conds = append(conds, expression.Contains(expression.Name("theme_song.title"), filter.ThemeSongTitle))
	}

	cond := conds[0]
	for _, c := range conds[1:] {
		cond = cond.And(c)
	}
	return cond
}
