package server

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/roomsync/internal/server/config"
	"github.com/stretchr/testify/require"
)

func TestNewApp_Memory(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ListenAddr = "127.0.0.1:0"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, app.server)
	require.NoError(t, app.closeFn())
}

func TestNewApp_UnknownStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreDriver = "etcd"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
