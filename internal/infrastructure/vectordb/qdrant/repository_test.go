package qdrant

import (
	"testing"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

func TestPointID(t *testing.T) {
	t.Run("uuid passes through", func(t *testing.T) {
		id := "3f1c2a9e-8d7b-4c6a-9e5f-0a1b2c3d4e5f"
		assert.Equal(t, id, pointID(id))
	})

	t.Run("other ids hash stably", func(t *testing.T) {
		first := pointID("fav-1")
		_, err := uuid.Parse(first)
		require.NoError(t, err)
		assert.Equal(t, first, pointID("fav-1"))
		assert.NotEqual(t, first, pointID("fav-2"))
	})
}

func TestToPoint(t *testing.T) {
	item := ports.IndexedCharacter{
		ID:          "fav-1",
		OwnerID:     "u1",
		Name:        "Ilyra",
		EnclaveName: "Moonveil",
		Text:        "Ilyra of Moonveil",
		Embedding:   []float32{0.1, 0.2},
	}

	point := toPoint(&item)

	assert.Equal(t, pointID("fav-1"), point.Id.GetUuid())
	assert.Equal(t, []float32{0.1, 0.2}, point.Vectors.GetVector().GetData())
	assert.Equal(t, "fav-1", getStringValue(point.Payload, payloadFavoriteID))
	assert.Equal(t, "u1", getStringValue(point.Payload, payloadOwnerID))
	assert.Equal(t, "Ilyra", getStringValue(point.Payload, payloadName))
	assert.Equal(t, "Moonveil", getStringValue(point.Payload, payloadEnclaveName))
	assert.Equal(t, "Ilyra of Moonveil", getStringValue(point.Payload, payloadText))
}

func TestOwnerFilter(t *testing.T) {
	filter := ownerFilter("u1")

	require.Len(t, filter.Must, 1)
	field := filter.Must[0].GetField()
	require.NotNil(t, field)
	assert.Equal(t, payloadOwnerID, field.Key)
	assert.Equal(t, "u1", field.Match.GetKeyword())
}

func TestScoredPointsToHits(t *testing.T) {
	points := []*pb.ScoredPoint{
		{
			Id:    &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: pointID("fav-1")}},
			Score: 0.91,
			Payload: map[string]*pb.Value{
				payloadFavoriteID:  {Kind: &pb.Value_StringValue{StringValue: "fav-1"}},
				payloadName:        {Kind: &pb.Value_StringValue{StringValue: "Ilyra"}},
				payloadEnclaveName: {Kind: &pb.Value_StringValue{StringValue: "Moonveil"}},
			},
		},
		{
			Id:    &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: "3f1c2a9e-8d7b-4c6a-9e5f-0a1b2c3d4e5f"}},
			Score: 0.5,
		},
	}

	hits := scoredPointsToHits(points)

	require.Len(t, hits, 2)
	assert.Equal(t, ports.SearchHit{ID: "fav-1", Name: "Ilyra", EnclaveName: "Moonveil", Score: 0.91}, hits[0])
	assert.Equal(t, "3f1c2a9e-8d7b-4c6a-9e5f-0a1b2c3d4e5f", hits[1].ID)
	assert.Empty(t, hits[1].Name)
}

func TestNewRepository(t *testing.T) {
	// grpc.NewClient does not dial until the first call.
	repo, err := NewRepository(config.QdrantConfig{Host: "localhost", Port: 6334, Collection: "test", APIKey: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "test", repo.collection)
	assert.NoError(t, repo.Close())
}
