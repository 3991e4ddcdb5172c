package services

import (
	"context"
	"testing"

	"moi-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartFixture(t *testing.T) (*CartService, *gorm.DB, *fakePublisher) {
	db := newTestDB(t)
	events := &fakePublisher{}
	svc := NewCartService(newMemCartStore(), repository.NewMenuRepository(db), events)
	return svc, db, events
}

func TestAddItemMergesIntoOneLine(t *testing.T) {
	svc, db, _ := newCartFixture(t)
	ctx := context.Background()
	m := seedMenuItem(t, db, "Moi Bowl", 13500)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.AddItem(ctx, 1, m.ID))
	}

	lines, err := svc.Lines(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, m.ID, lines[0].MenuItemID)
	assert.Equal(t, 3, lines[0].Qty)
}

func TestAddItemUnknownOrUnavailable(t *testing.T) {
	svc, db, _ := newCartFixture(t)
	ctx := context.Background()

	assert.Error(t, svc.AddItem(ctx, 1, 999))

	m := seedMenuItem(t, db, "Slut i lager", 9900)
	require.NoError(t, db.Model(m).Update("available", false).Error)
	assert.Error(t, svc.AddItem(ctx, 1, m.ID))
}

func TestDecreaseRemovesLineAtZero(t *testing.T) {
	svc, db, _ := newCartFixture(t)
	ctx := context.Background()
	a := seedMenuItem(t, db, "A", 1000)
	b := seedMenuItem(t, db, "B", 2500)

	require.NoError(t, svc.AddItem(ctx, 1, a.ID))
	require.NoError(t, svc.AddItem(ctx, 1, a.ID))
	require.NoError(t, svc.AddItem(ctx, 1, b.ID))

	lines, price, count, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(4500), price)
	assert.Equal(t, 3, count)

	require.NoError(t, svc.DecreaseQuantity(ctx, 1, a.ID))
	_, price, count, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), price)
	assert.Equal(t, 2, count)

	require.NoError(t, svc.DecreaseQuantity(ctx, 1, a.ID))
	lines, price, _, err = svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, b.ID, lines[0].MenuItemID)
	assert.Equal(t, int64(2500), price)

	for _, l := range lines {
		assert.GreaterOrEqual(t, l.Qty, 1)
	}
}

func TestSetQuantity(t *testing.T) {
	svc, db, _ := newCartFixture(t)
	ctx := context.Background()
	m := seedMenuItem(t, db, "Nigiri", 3500)

	require.NoError(t, svc.AddItem(ctx, 1, m.ID))
	require.NoError(t, svc.SetQuantity(ctx, 1, m.ID, 5))

	lines, err := svc.Lines(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Qty)

	// zero or less behaves like remove
	require.NoError(t, svc.SetQuantity(ctx, 1, m.ID, 0))
	lines, err = svc.Lines(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveAndAdjustAbsentAreNoops(t *testing.T) {
	svc, _, events := newCartFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RemoveItem(ctx, 1, 42))
	require.NoError(t, svc.DecreaseQuantity(ctx, 1, 42))
	require.NoError(t, svc.IncreaseQuantity(ctx, 1, 42))

	// nothing was deleted, so no removed event either
	events.mu.Lock()
	defer events.mu.Unlock()
	assert.Empty(t, events.events)
}

func TestTotalsRecomputedFromLines(t *testing.T) {
	svc, db, _ := newCartFixture(t)
	ctx := context.Background()
	a := seedMenuItem(t, db, "A", 1200)
	b := seedMenuItem(t, db, "B", 800)

	require.NoError(t, svc.AddItem(ctx, 1, a.ID))
	require.NoError(t, svc.AddItem(ctx, 1, b.ID))
	require.NoError(t, svc.IncreaseQuantity(ctx, 1, b.ID))

	lines, price, count, err := svc.Get(ctx, 1)
	require.NoError(t, err)

	var wantPrice int64
	var wantCount int
	for _, l := range lines {
		wantPrice += l.UnitPrice * int64(l.Qty)
		wantCount += l.Qty
	}
	assert.Equal(t, wantPrice, price)
	assert.Equal(t, wantCount, count)
}

func TestClearEmitsEvent(t *testing.T) {
	svc, db, events := newCartFixture(t)
	ctx := context.Background()
	m := seedMenuItem(t, db, "A", 1000)

	require.NoError(t, svc.AddItem(ctx, 1, m.ID))
	require.NoError(t, svc.Clear(ctx, 1))

	lines, err := svc.Lines(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)

	events.mu.Lock()
	defer events.mu.Unlock()
	require.NotEmpty(t, events.events)
	assert.Equal(t, "cart_cleared", events.events[len(events.events)-1].Type)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, db, _ := newCartFixture(t)
	ctx := context.Background()
	m := seedMenuItem(t, db, "A", 1000)

	require.NoError(t, svc.AddItem(ctx, 1, m.ID))
	require.NoError(t, svc.AddItem(ctx, 2, m.ID))
	require.NoError(t, svc.Clear(ctx, 2))

	lines, err := svc.Lines(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
