package service

import (
	"sync"
	"testing"
	"time"

	"laundrybill/internal/repository/memory"
	"laundrybill/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock in UTC.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock {
	return &testClock{now: t}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *testClock) Clock() Clock {
	return Clock{Now: c.Now, Location: time.UTC}
}

type publishedEvent struct {
	Name string
	Data interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Name: event, Data: data})
}

func (p *recordingPublisher) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, e.Name)
	}
	return names
}

type billFixture struct {
	store  *memory.Store
	clock  *testClock
	events *recordingPublisher
	shop   ShopService
	bills  BillService
}

var fixtureStart = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func newBillFixture(t *testing.T) *billFixture {
	t.Helper()
	store := memory.NewStore()
	clock := newTestClock(fixtureStart)
	events := &recordingPublisher{}
	shop := NewShopService(store.Shop(), store.Audit(), store.TxManager(), decimal.RequireFromString("0.05"))
	return &billFixture{
		store:  store,
		clock:  clock,
		events: events,
		shop:   shop,
		bills:  NewBillService(store.Bills(), store.Audit(), store.TxManager(), shop, events, clock.Clock(), ""),
	}
}

func validBillRequest() SaveBillRequest {
	return SaveBillRequest{
		CustomerName:  "Asha",
		CustomerPhone: "9876543210",
		CustomerTown:  "Pune",
		ReturnDate:    "2026-10-20",
		Items: []BillItemRequest{
			{Name: "Shirt", Qty: 2, Price: decimal.NewFromInt(10)},
			{Name: "Saree", Qty: 1, Price: decimal.NewFromInt(50)},
		},
	}
}

func assertKind(t *testing.T, err error, kind apperror.Kind) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, kind), "expected %s error, got %v", kind, err)
}
