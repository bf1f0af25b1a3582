//go:build integration

package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/l3montree-dev/vulncorrelator/database"
	"github.com/l3montree-dev/vulncorrelator/integrationtestutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLBroker(t *testing.T) {
	_, pool, terminate := integrationtestutil.InitDatabaseContainer()
	defer terminate()
	ctx := context.Background()

	publisher := database.NewPostgreSQLBroker(pool)
	defer publisher.Close()
	subscriber := database.NewPostgreSQLBroker(pool)
	defer subscriber.Close()

	ch, err := subscriber.Subscribe(database.SbomChanged)
	require.NoError(t, err)

	t.Run("other instances receive the message", func(t *testing.T) {
		require.NoError(t, publisher.Publish(ctx, database.NewSimpleMessage(database.SbomChanged, map[string]any{"sbomId": "sbom-1"})))

		select {
		case payload := <-ch:
			assert.Equal(t, "sbom-1", payload["sbomId"])
		case <-time.After(10 * time.Second):
			t.Fatal("no notification received")
		}
	})

	t.Run("own messages are skipped", func(t *testing.T) {
		require.NoError(t, subscriber.Publish(ctx, database.NewSimpleMessage(database.SbomChanged, map[string]any{"sbomId": "sbom-2"})))

		select {
		case payload := <-ch:
			t.Fatalf("unexpected message %v", payload)
		case <-time.After(time.Second):
		}
	})

	t.Run("own messages are delivered when enabled", func(t *testing.T) {
		subscriber.SetReceiveOwnMessages(true)
		defer subscriber.SetReceiveOwnMessages(false)
		require.NoError(t, subscriber.Publish(ctx, database.NewSimpleMessage(database.SbomChanged, map[string]any{"sbomId": "sbom-3"})))

		select {
		case payload := <-ch:
			assert.Equal(t, "sbom-3", payload["sbomId"])
		case <-time.After(10 * time.Second):
			t.Fatal("no notification received")
		}
	})
}
