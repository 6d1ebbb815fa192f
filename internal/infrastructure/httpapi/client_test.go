package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/domain/entities"
	"github.com/ersonp/enclave-favorites/internal/domain/mocks"
	"github.com/ersonp/enclave-favorites/internal/domain/ports"
	"github.com/ersonp/enclave-favorites/internal/domain/services"
	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

func newTestClient(t *testing.T, table *mocks.FavoritesTable) *Client {
	t.Helper()
	srv := httptest.NewServer(newTestRouter(table))
	t.Cleanup(srv.Close)

	client, err := NewClient(config.ClientConfig{ServerURL: srv.URL + "/", Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	return client
}

func ilyra() entities.CreateRequest {
	return entities.CreateRequest{Draft: entities.Draft{
		Name:           "Ilyra",
		EnclaveName:    "Moonveil",
		EnclaveSummary: "Tidewatchers.",
		EnclaveHook:    "The tide stopped.",
	}}
}

func TestClient_RoundTrip(t *testing.T) {
	table := &mocks.FavoritesTable{}
	client := newTestClient(t, table)
	ctx := context.Background()

	items, err := client.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	created, err := client.Create(ctx, ilyra())
	require.NoError(t, err)
	require.NotNil(t, created.Item)
	assert.Equal(t, "fav-1", created.Item.ID)
	assert.Equal(t, entities.MessageSaved, created.Message)
	assert.False(t, created.Item.CreatedAt.IsZero())

	dup, err := client.Create(ctx, ilyra())
	require.NoError(t, err)
	assert.True(t, dup.Duplicated)
	assert.Nil(t, dup.Item)

	items, err = client.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ilyra", items[0].Name)

	require.NoError(t, client.Delete(ctx, "fav-1"))
	require.NoError(t, client.Delete(ctx, "missing-id"))
	assert.Zero(t, table.Count())
}

func TestClient_ValidationError(t *testing.T) {
	client := newTestClient(t, &mocks.FavoritesTable{})

	_, err := client.Create(context.Background(), entities.CreateRequest{Draft: entities.Draft{Name: "Ilyra"}})

	var validationErr *entities.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"enclave_name", "enclave_summary", "enclave_hook"}, validationErr.Fields)
}

func TestClient_StoreError(t *testing.T) {
	client := newTestClient(t, &mocks.FavoritesTable{DeleteErr: errors.New("permission denied")})

	err := client.Delete(context.Background(), "fav-1")

	var storeErr *entities.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Failed to delete favorite", storeErr.Message)
	assert.Equal(t, "permission denied", storeErr.Details)

	var payload *ports.PayloadError
	require.ErrorAs(t, err, &payload)
	assert.Equal(t, "500", payload.Code)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client, err := NewClient(config.ClientConfig{ServerURL: url}, nil)
	require.NoError(t, err)

	_, err = client.List(context.Background())

	var storeErr *entities.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Failed to load favorites", storeErr.Message)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(config.ClientConfig{ServerURL: srv.URL}, nil)
	require.NoError(t, err)

	_, err = client.Create(context.Background(), ilyra())

	var storeErr *entities.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Failed to save favorite", storeErr.Message)
	assert.Equal(t, "bad gateway", storeErr.Details)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(config.ClientConfig{ServerURL: "localhost:8080"}, nil)
	assert.Error(t, err)

	_, err = NewClient(config.ClientConfig{ServerURL: "::"}, nil)
	assert.Error(t, err)
}

func TestClient_UnreadableErrorBody(t *testing.T) {
	client, err := NewClient(config.ClientConfig{ServerURL: "http://localhost:8080"}, nil)
	require.NoError(t, err)

	readErr := errors.New("connection reset")
	err = client.decodeError(context.Background(), services.OpRemove, http.StatusInternalServerError, iotest.ErrReader(readErr))

	var storeErr *entities.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "Failed to delete favorite", storeErr.Message)
	assert.Contains(t, storeErr.Details, "connection reset")
	assert.ErrorIs(t, err, readErr)
}

func TestNewClient_DefaultHasNoTimeout(t *testing.T) {
	cfg := config.Default().Client
	cfg.ServerURL = "http://localhost:8080"

	client, err := NewClient(cfg, nil)
	require.NoError(t, err)
	assert.Zero(t, client.httpClient.Timeout)
}
