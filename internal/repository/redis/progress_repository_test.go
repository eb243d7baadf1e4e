package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/lingualearn/internal/repository"
	"github.com/vytor/lingualearn/internal/repository/redis"
	"github.com/vytor/lingualearn/internal/testutil"
)

func TestProgressRepositorySuite(t *testing.T) {
	addr := os.Getenv("LINGUALEARN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("LINGUALEARN_TEST_REDIS_ADDR not set")
	}

	suite.Run(t, &testutil.ProgressRepositorySuite{
		NewRepo: func(t *testing.T, maxHearts int) repository.ProgressRepository {
			client, err := redis.Open(context.Background(), redis.Config{Addr: addr})
			require.NoError(t, err)
			t.Cleanup(func() { _ = client.Close() })
			return redis.NewProgressRepository(client, maxHearts)
		},
	})
}
