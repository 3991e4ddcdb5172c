package services

import (
	"context"
	"testing"

	"moi-backend/entity"
	"moi-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type orderFixture struct {
	db      *gorm.DB
	cart    *CartService
	orders  *OrderService
	gateway *fakeGateway
	events  *fakePublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	db := newTestDB(t)
	gateway := &fakeGateway{failTokens: map[string]bool{}}
	events := &fakePublisher{}
	notifier := NewNotificationService(repository.NewUserRepository(db), gateway)
	cart := NewCartService(newMemCartStore(), repository.NewMenuRepository(db), events)
	orders := NewOrderService(db, repository.NewOrderRepository(db), cart, notifier, events)
	return &orderFixture{db: db, cart: cart, orders: orders, gateway: gateway, events: events}
}

func placeIn() *PlaceOrderIn {
	return &PlaceOrderIn{
		DeliveryAddress: "Storgatan 1, Trelleborg",
		PhoneNumber:     "0701234567",
		Email:           "anna@test.se",
		Name:            "Anna",
	}
}

func TestPlaceOrderPreconditions(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.orders.PlaceOrder(ctx, 0, placeIn())
	assert.ErrorIs(t, err, ErrUnauthorized)

	user := seedUser(t, f.db, "customer", "")
	_, err = f.orders.PlaceOrder(ctx, user.ID, placeIn())
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	f.db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	seedUser(t, f.db, "admin", "ExponentPushToken[admin]")
	user := seedUser(t, f.db, "customer", "")
	a := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	b := seedMenuItem(t, f.db, "Nigiri", 1500)

	require.NoError(t, f.cart.AddItem(ctx, user.ID, a.ID))
	require.NoError(t, f.cart.AddItem(ctx, user.ID, b.ID))

	order, err := f.orders.PlaceOrder(ctx, user.ID, placeIn())
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, int64(15000), order.TotalPrice)
	assert.Len(t, order.Items, 2)

	// cart is empty immediately after a successful placement
	lines, err := f.cart.Lines(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// exactly one admin notification, discriminated as an order
	sent := f.gateway.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "order", sent[0].N.Data["type"])
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "customer", "")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, user.ID, m.ID))

	order, err := f.orders.PlaceOrder(ctx, user.ID, placeIn())
	require.NoError(t, err)

	// a later menu price change must not rewrite history
	require.NoError(t, f.db.Model(m).Update("price", 19900).Error)

	stored, err := f.orders.Detail(user.ID, "customer", order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(13500), stored.Items[0].UnitPrice)
	assert.Equal(t, "Moi Bowl", stored.Items[0].Name)
	assert.Equal(t, int64(13500), stored.TotalPrice)
}

func TestPlaceOrderFailureKeepsCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "customer", "")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, user.ID, m.ID))

	// make the item insert fail mid-transaction
	require.NoError(t, f.db.Migrator().DropTable(&entity.OrderItem{}))

	_, err := f.orders.PlaceOrder(ctx, user.ID, placeIn())
	require.Error(t, err)

	// the order row was rolled back and the cart kept its contents
	var count int64
	f.db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count)

	lines, err := f.cart.Lines(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Qty)

	// and no admin notification went out for the failed write
	assert.Empty(t, f.gateway.Sent())
}

func TestPlaceOrderNotificationFailureIsolated(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	seedUser(t, f.db, "admin", "ExponentPushToken[admin]")
	user := seedUser(t, f.db, "customer", "")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, user.ID, m.ID))

	f.gateway.failAll = true

	order, err := f.orders.PlaceOrder(ctx, user.ID, placeIn())
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestUpdateStatusFollowsStateMachine(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "customer", "ExponentPushToken[anna]")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, user.ID, m.ID))
	order, err := f.orders.PlaceOrder(ctx, user.ID, placeIn())
	require.NoError(t, err)
	f.gateway.mu.Lock()
	f.gateway.sent = nil // drop the placement confirmation
	f.gateway.mu.Unlock()

	// pending cannot jump straight to completed
	assert.ErrorIs(t, f.orders.UpdateStatus(ctx, order.ID, entity.OrderCompleted), ErrInvalidTransition)

	require.NoError(t, f.orders.UpdateStatus(ctx, order.ID, entity.OrderProcessing))
	require.NoError(t, f.orders.UpdateStatus(ctx, order.ID, entity.OrderCompleted))

	// completed is terminal
	assert.ErrorIs(t, f.orders.UpdateStatus(ctx, order.ID, entity.OrderCancelled), ErrInvalidTransition)

	stored, err := f.orders.Detail(user.ID, "customer", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, stored.Status)

	// the customer heard about each transition
	sent := f.gateway.Sent()
	require.Len(t, sent, 2)
	for _, s := range sent {
		assert.Equal(t, "order_status", s.N.Data["type"])
	}
	assert.Equal(t, string(entity.OrderCompleted), sent[1].N.Data["status"])
}

func TestUpdateStatusNotificationFailureIsolated(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	user := seedUser(t, f.db, "customer", "ExponentPushToken[anna]")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, user.ID, m.ID))
	order, err := f.orders.PlaceOrder(ctx, user.ID, placeIn())
	require.NoError(t, err)

	f.gateway.failAll = true
	require.NoError(t, f.orders.UpdateStatus(ctx, order.ID, entity.OrderProcessing))

	stored, err := f.orders.Detail(user.ID, "customer", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, stored.Status)
}

func TestListForUserNewestFirstAndFiltered(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	anna := seedUser(t, f.db, "customer", "")
	bert := seedUser(t, f.db, "customer", "")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)

	for _, u := range []uint{anna.ID, bert.ID, anna.ID} {
		require.NoError(t, f.cart.AddItem(ctx, u, m.ID))
		_, err := f.orders.PlaceOrder(ctx, u, placeIn())
		require.NoError(t, err)
	}

	mine, err := f.orders.ListForUser(anna.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Greater(t, mine[0].ID, mine[1].ID)

	all, err := f.orders.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDeleteOrderAuthorization(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	owner := seedUser(t, f.db, "customer", "")
	other := seedUser(t, f.db, "customer", "")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, owner.ID, m.ID))
	order, err := f.orders.PlaceOrder(ctx, owner.ID, placeIn())
	require.NoError(t, err)

	// a stranger may not delete it
	assert.ErrorIs(t, f.orders.Delete(other.ID, "customer", order.ID), ErrForbidden)

	// the owner may, and the item rows go with it
	require.NoError(t, f.orders.Delete(owner.ID, "customer", order.ID))

	var orders, items int64
	f.db.Model(&entity.Order{}).Count(&orders)
	f.db.Model(&entity.OrderItem{}).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestDeleteOrderAsAdmin(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	owner := seedUser(t, f.db, "customer", "")
	admin := seedUser(t, f.db, "admin", "")
	m := seedMenuItem(t, f.db, "Moi Bowl", 13500)
	require.NoError(t, f.cart.AddItem(ctx, owner.ID, m.ID))
	order, err := f.orders.PlaceOrder(ctx, owner.ID, placeIn())
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(admin.ID, "admin", order.ID))
}
