package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/mamadbah2/foodtracker/internal/repository/slot"
)

var _ slot.Slot = (*MongoDBRepository)(nil)

func TestSlotDocumentEncoding(t *testing.T) {
	updated := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	raw, err := bson.Marshal(slotDocument{Key: "foodCompanyState", Payload: `{"inventory":[]}`, UpdatedAt: updated})
	require.NoError(t, err)

	var decoded bson.M
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, "foodCompanyState", decoded["_id"])
	assert.Equal(t, `{"inventory":[]}`, decoded["payload"])
	assert.Contains(t, decoded, "updated_at")
}

func TestNewMongoDBRepositoryRejectsBadURI(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewMongoDBRepository(ctx, "not-a-mongo-uri", "tracker", "")
	assert.Error(t, err)
}

func TestGetMissingSlot(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no document", func(mt *mtest.T) {
		repo := NewMongoDBRepositoryWithClient(mt.Client, "tracker", "slots")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tracker.slots", mtest.FirstBatch))

		_, err := repo.Get(context.Background(), "foodCompanyState")
		assert.ErrorIs(t, err, slot.ErrNotFound)
	})

	mt.Run("server error", func(mt *mtest.T) {
		repo := NewMongoDBRepositoryWithClient(mt.Client, "tracker", "slots")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "denied"}))

		_, err := repo.Get(context.Background(), "foodCompanyState")
		require.Error(t, err)
		assert.NotErrorIs(t, err, slot.ErrNotFound)
	})
}

func TestSetUpsertsAndReadsBack(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("round trip", func(mt *mtest.T) {
		repo := NewMongoDBRepositoryWithClient(mt.Client, "tracker", "slots")
		repo.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "foodCompanyState"}}}},
		))
		require.NoError(t, repo.Set(context.Background(), "foodCompanyState", `{"inventory":[]}`))

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "update", started.CommandName)
		assert.True(t, started.Command.Lookup("updates", "0", "upsert").Boolean())
		assert.Equal(t, `{"inventory":[]}`, started.Command.Lookup("updates", "0", "u", "payload").StringValue())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "tracker.slots", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "foodCompanyState"},
			{Key: "payload", Value: `{"inventory":[]}`},
			{Key: "updated_at", Value: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)},
		}))
		value, err := repo.Get(context.Background(), "foodCompanyState")
		require.NoError(t, err)
		assert.Equal(t, `{"inventory":[]}`, value)
	})

	mt.Run("write error", func(mt *mtest.T) {
		repo := NewMongoDBRepositoryWithClient(mt.Client, "tracker", "slots")
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		assert.Error(t, repo.Set(context.Background(), "foodCompanyState", "{}"))
	})
}
