package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders-admin/internal/client"
	"github.com/vladislavdragonenkov/orders-admin/internal/domain"
)

func TestNewStore_InMemorySeedsDemoOrders(t *testing.T) {
	store, err := newStore(context.Background(), options{inMemory: true}, log.WithField("test", "tui"))
	require.NoError(t, err)

	list, err := store.List(context.Background(), domain.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestNewStore_Remote(t *testing.T) {
	store, err := newStore(context.Background(), options{apiURL: "http://localhost:8080"}, log.WithField("test", "tui"))
	require.NoError(t, err)
	assert.IsType(t, &client.Client{}, store)

	_, err = newStore(context.Background(), options{apiURL: "not a url"}, log.WithField("test", "tui"))
	assert.Error(t, err)
}

func TestSetupLogger_File(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "tui.log")
	closeLog, err := setupLogger(path)
	require.NoError(t, err)

	log.Info("hello from tui")
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from tui")
}
