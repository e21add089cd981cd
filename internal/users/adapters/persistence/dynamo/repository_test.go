package dynamo

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/user-service/internal/users/domain"
	"github.com/Apurer/user-service/internal/users/ports"
)

type stubClient struct {
	putInput    *dynamodb.PutItemInput
	putErr      error
	getInput    *dynamodb.GetItemInput
	getOutput   *dynamodb.GetItemOutput
	getErr      error
	deleteInput *dynamodb.DeleteItemInput
	deleteErr   error
}

func (s *stubClient) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	s.putInput = params
	return &dynamodb.PutItemOutput{}, s.putErr
}

func (s *stubClient) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	s.getInput = params
	if s.getOutput == nil {
		return &dynamodb.GetItemOutput{}, s.getErr
	}
	return s.getOutput, s.getErr
}

func (s *stubClient) DeleteItem(_ context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	s.deleteInput = params
	return &dynamodb.DeleteItemOutput{}, s.deleteErr
}

func sampleUser() *domain.User {
	return &domain.User{
		ID:        "0b2f7b6c-7a70-4c4f-8e6b-2d58a2b0a3a1",
		FirstName: "John",
		LastName:  "Doe",
		Emails:    []string{"john@example.com"},
		DOB:       "1990-01-01",
	}
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func TestCreate_PutsWithAbsenceCondition(t *testing.T) {
	client := &stubClient{}
	repo := NewRepository(client, "users-table")

	require.NoError(t, repo.Create(context.Background(), sampleUser()))
	require.NotNil(t, client.putInput)
	assert.Equal(t, "users-table", aws.ToString(client.putInput.TableName))
	assert.Equal(t, "attribute_not_exists(id)", aws.ToString(client.putInput.ConditionExpression))
}

func TestCreate_ConditionFailureMapsToAlreadyExists(t *testing.T) {
	client := &stubClient{putErr: conditionFailed()}
	repo := NewRepository(client, "users-table")

	err := repo.Create(context.Background(), sampleUser())
	require.ErrorIs(t, err, ports.ErrAlreadyExists)
}

func TestGet_RoundTripsItem(t *testing.T) {
	item, err := attributevalue.MarshalMap(sampleUser())
	require.NoError(t, err)
	client := &stubClient{getOutput: &dynamodb.GetItemOutput{Item: item}}
	repo := NewRepository(client, "users-table")

	user, err := repo.Get(context.Background(), sampleUser().ID)
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), user)

	require.NotNil(t, client.getInput)
	key, ok := client.getInput.Key["id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, sampleUser().ID, key.Value)
}

func TestGet_AbsentItemMapsToNotFound(t *testing.T) {
	client := &stubClient{}
	repo := NewRepository(client, "users-table")

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdate_PutsWithPresenceCondition(t *testing.T) {
	client := &stubClient{}
	repo := NewRepository(client, "users-table")

	user, err := repo.Update(context.Background(), sampleUser())
	require.NoError(t, err)
	assert.Equal(t, sampleUser(), user)
	require.NotNil(t, client.putInput)
	assert.Equal(t, "attribute_exists(id)", aws.ToString(client.putInput.ConditionExpression))
}

func TestUpdate_ConditionFailureMapsToNotFound(t *testing.T) {
	client := &stubClient{putErr: conditionFailed()}
	repo := NewRepository(client, "users-table")

	_, err := repo.Update(context.Background(), sampleUser())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDelete_RemovesByKey(t *testing.T) {
	client := &stubClient{}
	repo := NewRepository(client, "users-table")

	require.NoError(t, repo.Delete(context.Background(), sampleUser().ID))
	require.NotNil(t, client.deleteInput)
	key, ok := client.deleteInput.Key["id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, sampleUser().ID, key.Value)
}
