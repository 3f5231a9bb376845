package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yavemu/products-shop-web/internal/checkout/checkoutlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "checkout.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndLatest(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	started := &checkoutlog.Entry{
		CheckoutID: "run-1",
		Status:     checkoutlog.StatusStarted,
		Step:       "creating-customer",
		Payload:    `{"customerName":"Ana Gómez"}`,
		CreatedAt:  time.Now().UTC().Add(-2 * time.Second),
	}
	require.NoError(t, repo.Save(ctx, started))

	failed := &checkoutlog.Entry{
		CheckoutID:   "run-1",
		Status:       checkoutlog.StatusFailed,
		Step:         "creating-order",
		ErrorMessage: "Validación fallida: Nombre del cliente es requerido",
		TraceID:      "4bf92f3577b34da6a3ce929d0e0e4736",
		SpanID:       "00f067aa0ba902b7",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, failed))

	latest, err := repo.Latest(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, checkoutlog.StatusFailed, latest.Status)
	assert.Equal(t, "creating-order", latest.Step)
	assert.Equal(t, failed.ErrorMessage, latest.ErrorMessage)
	assert.Equal(t, failed.TraceID, latest.TraceID)
	// The STARTED payload is not copied onto later rows.
	assert.Empty(t, latest.Payload)
}

func TestLatestUnknownCheckout(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.Latest(context.Background(), "missing")
	assert.ErrorIs(t, err, checkoutlog.ErrNotFound)
}
