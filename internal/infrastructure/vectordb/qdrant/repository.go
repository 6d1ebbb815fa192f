// Package qdrant provides a CharacterIndex implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

// Payload keys stored on every point.
const (
	payloadFavoriteID  = "favorite_id"
	payloadOwnerID     = "owner_id"
	payloadName        = "name"
	payloadEnclaveName = "enclave_name"
	payloadText        = "text"
)

// waitForWrite makes writes visible to the next search before returning.
var waitForWrite = true

// Repository implements ports.CharacterIndex and ports.CollectionManager using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

var (
	_ ports.CharacterIndex    = (*Repository)(nil)
	_ ports.CollectionManager = (*Repository)(nil)
)

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	opts := []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	if cfg.APIKey != "" {
		opts = append(opts, grpc.WithUnaryInterceptor(apiKeyInterceptor(cfg.APIKey)))
	}

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// apiKeyInterceptor attaches the Qdrant Cloud api-key header to every call.
func apiKeyInterceptor(apiKey string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, "api-key", apiKey)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist, along with the owner index.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	_, err = r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	_, err = r.points.CreateFieldIndex(ctx, &pb.CreateFieldIndexCollection{
		CollectionName: r.collection,
		FieldName:      payloadOwnerID,
		FieldType:      pb.FieldType_FieldTypeKeyword.Enum(),
	})
	if err != nil {
		return fmt.Errorf("creating owner index: %w", err)
	}

	return nil
}

// DeleteCollection drops the collection.
func (r *Repository) DeleteCollection(ctx context.Context) error {
	_, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	})
	if err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}
	return nil
}

// Upsert writes or replaces the given characters.
func (r *Repository) Upsert(ctx context.Context, items []ports.IndexedCharacter) error {
	if len(items) == 0 {
		return nil
	}

	points := make([]*pb.PointStruct, 0, len(items))
	for i := range items {
		points = append(points, toPoint(&items[i]))
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Wait:           &waitForWrite,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search performs a semantic search restricted to ownerID's characters.
func (r *Repository) Search(ctx context.Context, ownerID string, embedding []float32, limit int) ([]ports.SearchHit, error) {
	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         ownerFilter(ownerID),
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	return scoredPointsToHits(resp.Result), nil
}

// Delete removes characters by favorite id.
func (r *Repository) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*pb.PointId, 0, len(ids))
	for _, id := range ids {
		pointIDs = append(pointIDs, &pb.PointId{PointIdOptions: &pb.PointId_Uuid{Uuid: pointID(id)}})
	}

	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Wait:           &waitForWrite,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Points{
				Points: &pb.PointsIdsList{Ids: pointIDs},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting points: %w", err)
	}

	return nil
}

// DeleteByOwner removes every point owned by ownerID.
func (r *Repository) DeleteByOwner(ctx context.Context, ownerID string) error {
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.collection,
		Wait:           &waitForWrite,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: ownerFilter(ownerID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("deleting points by owner: %w", err)
	}

	return nil
}

// pointID maps a favorite id onto a Qdrant point id. Qdrant accepts only
// UUIDs or integers, so other ids are hashed into a stable UUID.
func pointID(favoriteID string) string {
	if id, err := uuid.Parse(favoriteID); err == nil {
		return id.String()
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("enclave:favorite:"+favoriteID)).String()
}

func ownerFilter(ownerID string) *pb.Filter {
	return &pb.Filter{
		Must: []*pb.Condition{
			{
				ConditionOneOf: &pb.Condition_Field{
					Field: &pb.FieldCondition{
						Key: payloadOwnerID,
						Match: &pb.Match{
							MatchValue: &pb.Match_Keyword{
								Keyword: ownerID,
							},
						},
					},
				},
			},
		},
	}
}

func toPoint(item *ports.IndexedCharacter) *pb.PointStruct {
	return &pb.PointStruct{
		Id: &pb.PointId{
			PointIdOptions: &pb.PointId_Uuid{
				Uuid: pointID(item.ID),
			},
		},
		Vectors: &pb.Vectors{
			VectorsOptions: &pb.Vectors_Vector{
				Vector: &pb.Vector{
					Data: item.Embedding,
				},
			},
		},
		Payload: map[string]*pb.Value{
			payloadFavoriteID:  {Kind: &pb.Value_StringValue{StringValue: item.ID}},
			payloadOwnerID:     {Kind: &pb.Value_StringValue{StringValue: item.OwnerID}},
			payloadName:        {Kind: &pb.Value_StringValue{StringValue: item.Name}},
			payloadEnclaveName: {Kind: &pb.Value_StringValue{StringValue: item.EnclaveName}},
			payloadText:        {Kind: &pb.Value_StringValue{StringValue: item.Text}},
		},
	}
}

// scoredPointsToHits converts scored points to search hits.
func scoredPointsToHits(points []*pb.ScoredPoint) []ports.SearchHit {
	hits := make([]ports.SearchHit, 0, len(points))

	for _, point := range points {
		payload := point.Payload

		id := getStringValue(payload, payloadFavoriteID)
		if id == "" {
			id = point.Id.GetUuid()
		}

		hits = append(hits, ports.SearchHit{
			ID:          id,
			Name:        getStringValue(payload, payloadName),
			EnclaveName: getStringValue(payload, payloadEnclaveName),
			Score:       point.Score,
		})
	}

	return hits
}

func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
