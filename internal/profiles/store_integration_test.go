package profiles_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/EmpoweredVote/rental-search/internal/db"
	"github.com/EmpoweredVote/rental-search/internal/profiles"
)

func TestGormStore_Integration(t *testing.T) {
	_ = godotenv.Load("../../.env.local")

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	d, err := db.Open(dsn)
	require.NoError(t, err)

	store, err := profiles.Init(d)
	require.NoError(t, err)

	ctx := context.Background()
	name := fmt.Sprintf("Integration Client %d", time.Now().UnixNano())
	t.Cleanup(func() { _ = store.Delete(ctx, name) })

	p := &profiles.Profile{ClientName: name, Region: "cook", VoucherBedrooms: 2, PreferredTowns: []string{"Evanston"}}
	require.NoError(t, store.Save(ctx, p))

	got, err := store.Load(ctx, name)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, []string{"Evanston"}, []string(got.PreferredTowns))

	replaced := &profiles.Profile{ClientName: name, Region: "cook", VoucherBedrooms: 3}
	require.NoError(t, store.Save(ctx, replaced))
	require.Equal(t, p.ID, replaced.ID)

	dismissed, err := store.Dismiss(ctx, name, "listing-1")
	require.NoError(t, err)
	require.True(t, dismissed.IsDismissed("listing-1"))

	require.NoError(t, store.Delete(ctx, name))
	_, err = store.Load(ctx, name)
	require.ErrorIs(t, err, profiles.ErrProfileNotFound)
}
