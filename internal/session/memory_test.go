package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farmafacil/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestMemoryStore(ttl time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(ttl, zerolog.Nop())
	store.now = clock.Now
	return store, clock
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store, clock := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s := New(clock.now)
	s.PendingPhone = "600123456"
	s.User = &model.User{ID: "1", Name: "María García", Phone: "600123456"}
	s.Append(model.ChatMessage{ID: "m1", Sender: model.SenderUser, Text: "hola", Timestamp: clock.now})
	require.NoError(t, s.Cart("F012").Add(model.Product{ID: "C001", Price: decimal.RequireFromString("3.50")}))

	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "600123456", got.PendingPhone)
	assert.Equal(t, "María García", got.User.Name)
	assert.Len(t, got.Conversation, 1)
	assert.Equal(t, 1, got.Cart("F012").Len())
	assert.True(t, got.Cart("F012").Total().Equal(decimal.RequireFromString("3.50")))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store, clock := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s := New(clock.now)
	require.NoError(t, store.Save(ctx, s))

	s.PendingPhone = "changed after save"

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PendingPhone)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store, _ := newTestMemoryStore(time.Hour)

	got, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store, clock := newTestMemoryStore(time.Minute)
	ctx := context.Background()

	s := New(clock.now)
	require.NoError(t, store.Save(ctx, s))

	clock.now = clock.now.Add(30 * time.Second)
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	// saving again slides the expiry
	require.NoError(t, store.Save(ctx, got))
	clock.now = clock.now.Add(45 * time.Second)
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)

	clock.now = clock.now.Add(time.Minute)
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_Delete(t *testing.T) {
	store, clock := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s := New(clock.now)
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_UpdateConcurrent(t *testing.T) {
	store, clock := newTestMemoryStore(time.Hour)
	ctx := context.Background()

	s := New(clock.now)
	require.NoError(t, store.Save(ctx, s))

	p := model.Product{ID: "C001", Price: decimal.RequireFromString("3.50")}
	const writers = 50

	var wg sync.WaitGroup
	for range writers {
		wg.Go(func() {
			_, err := store.Update(ctx, s.ID, func(s *Session) error {
				return s.Cart("F012").Add(p)
			})
			assert.NoError(t, err)
		})
	}
	wg.Go(func() {
		_, err := store.Update(ctx, s.ID, func(s *Session) error {
			s.Append(model.ChatMessage{ID: "m1", Sender: model.SenderUser, Text: "hola"})
			return nil
		})
		assert.NoError(t, err)
	})
	wg.Wait()

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, writers, got.Cart("F012").Len())
	assert.Len(t, got.Conversation, 1)
}

func TestMemoryStore_Update(t *testing.T) {
	errRejected := errors.New("rejected")

	tests := []struct {
		name      string
		stored    bool
		expire    bool
		fn        func(*Session) error
		wantErr   error
		wantPhone string
	}{
		{
			name:      "applies the change",
			stored:    true,
			fn:        func(s *Session) error { s.PendingPhone = "600123456"; return nil },
			wantPhone: "600123456",
		},
		{
			name:    "missing session is not recreated",
			fn:      func(s *Session) error { s.PendingPhone = "600123456"; return nil },
			wantErr: ErrNotFound,
		},
		{
			name:    "expired session is not recreated",
			stored:  true,
			expire:  true,
			fn:      func(s *Session) error { s.PendingPhone = "600123456"; return nil },
			wantErr: ErrNotFound,
		},
		{
			name:    "error from fn discards the change",
			stored:  true,
			fn:      func(s *Session) error { s.PendingPhone = "600123456"; return errRejected },
			wantErr: errRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, clock := newTestMemoryStore(time.Minute)
			ctx := context.Background()

			s := New(clock.now)
			if tt.stored {
				require.NoError(t, store.Save(ctx, s))
			}
			if tt.expire {
				clock.now = clock.now.Add(2 * time.Minute)
			}

			updated, err := store.Update(ctx, s.ID, tt.fn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantPhone, updated.PendingPhone)
				assert.Equal(t, clock.now, updated.UpdatedAt)
			}

			got, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			if !tt.stored || tt.expire {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPhone, got.PendingPhone)
		})
	}
}

func TestMemoryStore_UpdateSlidesExpiry(t *testing.T) {
	store, clock := newTestMemoryStore(time.Minute)
	ctx := context.Background()

	s := New(clock.now)
	require.NoError(t, store.Save(ctx, s))

	clock.now = clock.now.Add(45 * time.Second)
	_, err := store.Update(ctx, s.ID, func(*Session) error { return nil })
	require.NoError(t, err)

	clock.now = clock.now.Add(45 * time.Second)
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestMemoryStore_RunStopsOnCancel(t *testing.T) {
	store, _ := newTestMemoryStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
