package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"example.com/fitlog/internal/config"
	"example.com/fitlog/internal/persistence"
)

func TestOpenStoreDrivers(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	cases := map[string]config.Config{
		"memory": {StoreDriver: config.DriverMemory},
		"sqlite": {StoreDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "fitlog.db")},
		"redis":  {StoreDriver: config.DriverRedis, RedisAddr: server.Addr()},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store, closeStore, err := OpenStore(ctx, cfg)
			require.NoError(t, err)
			defer closeStore()

			require.NoError(t, store.Set(ctx, persistence.StorageKey, []byte("[]")))
			raw, err := store.Get(ctx, persistence.StorageKey)
			require.NoError(t, err)
			require.Equal(t, "[]", string(raw))
		})
	}
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), config.Config{StoreDriver: "floppy"})
	require.Error(t, err)
}
