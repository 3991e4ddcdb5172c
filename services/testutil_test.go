package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"moi-backend/entity"
	"moi-backend/pkg/push"
	"moi-backend/ws"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Booking{},
	))
	return db
}

// memCartStore is an in-memory stand-in for the redis cart cache.
type memCartStore struct {
	mu    sync.Mutex
	carts map[uint][]entity.CartLine
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: make(map[uint][]entity.CartLine)}
}

func (s *memCartStore) Load(_ context.Context, userID uint) ([]entity.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]entity.CartLine, len(s.carts[userID]))
	copy(lines, s.carts[userID])
	return lines, nil
}

func (s *memCartStore) Save(_ context.Context, userID uint, lines []entity.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(lines) == 0 {
		delete(s.carts, userID)
		return nil
	}
	cp := make([]entity.CartLine, len(lines))
	copy(cp, lines)
	s.carts[userID] = cp
	return nil
}

func (s *memCartStore) Clear(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// fakeGateway records sends and can be told to fail, globally or per token.
type fakeGateway struct {
	mu         sync.Mutex
	sent       []sentPush
	failAll    bool
	failTokens map[string]bool
}

type sentPush struct {
	Token string
	N     push.Notification
}

func (g *fakeGateway) Send(_ context.Context, token string, n push.Notification) error {
	g.mu.Lock()
	failed := g.failAll || g.failTokens[token]
	if !failed {
		g.sent = append(g.sent, sentPush{Token: token, N: n})
	}
	g.mu.Unlock()
	if failed {
		return fmt.Errorf("gateway rejected %s", token)
	}
	return nil
}

func (g *fakeGateway) Sent() []sentPush {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]sentPush, len(g.sent))
	copy(out, g.sent)
	return out
}

// fakePublisher records hub events.
type fakePublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *fakePublisher) Publish(_ uint, event ws.Event) {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

var userSeq atomic.Uint64

func seedUser(t *testing.T, db *gorm.DB, role, token string) *entity.User {
	t.Helper()
	u := entity.User{
		Email:     fmt.Sprintf("%s-%d@test.se", role, userSeq.Add(1)),
		Password:  "x",
		Name:      "Test " + role,
		Role:      role,
		PushToken: token,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *entity.MenuItem {
	t.Helper()
	m := entity.MenuItem{Name: name, Price: price, Category: "Sushi", Available: true}
	require.NoError(t, db.Create(&m).Error)
	return &m
}
