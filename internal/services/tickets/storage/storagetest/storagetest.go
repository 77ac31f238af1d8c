// Package storagetest holds behaviour checks every SlotStore must pass.
package storagetest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
)

// Run exercises a SlotStore implementation. open must return a fresh, empty
// store for each call.
func Run(t *testing.T, open func(t *testing.T) storage.SlotStore) {
	t.Helper()

	t.Run("get missing slot", func(t *testing.T) {
		slots := open(t)
		_, err := slots.GetSlot(context.Background(), storage.SessionKey)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("GetSlot error = %v, want %v", err, storage.ErrNotFound)
		}
	})

	t.Run("put then get", func(t *testing.T) {
		slots := open(t)
		ctx := context.Background()
		want := []byte(`{"id":1}`)
		if err := slots.PutSlot(ctx, storage.SessionKey, want); err != nil {
			t.Fatalf("put slot: %v", err)
		}
		got, err := slots.GetSlot(ctx, storage.SessionKey)
		if err != nil {
			t.Fatalf("get slot: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("GetSlot = %q, want %q", got, want)
		}
	})

	t.Run("put replaces", func(t *testing.T) {
		slots := open(t)
		ctx := context.Background()
		if err := slots.PutSlot(ctx, storage.TicketsKey, []byte(`[]`)); err != nil {
			t.Fatalf("put slot: %v", err)
		}
		if err := slots.PutSlot(ctx, storage.TicketsKey, []byte(`[{"id":2}]`)); err != nil {
			t.Fatalf("replace slot: %v", err)
		}
		got, err := slots.GetSlot(ctx, storage.TicketsKey)
		if err != nil {
			t.Fatalf("get slot: %v", err)
		}
		if string(got) != `[{"id":2}]` {
			t.Fatalf("GetSlot = %q, want replaced value", got)
		}
	})

	t.Run("slots are independent", func(t *testing.T) {
		slots := open(t)
		ctx := context.Background()
		if err := slots.PutSlot(ctx, storage.SessionKey, []byte(`{}`)); err != nil {
			t.Fatalf("put session slot: %v", err)
		}
		if _, err := slots.GetSlot(ctx, storage.TicketsKey); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("tickets slot error = %v, want not found", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		slots := open(t)
		ctx := context.Background()
		if err := slots.PutSlot(ctx, storage.SessionKey, []byte(`{}`)); err != nil {
			t.Fatalf("put slot: %v", err)
		}
		for i := 0; i < 2; i++ {
			if err := slots.DeleteSlot(ctx, storage.SessionKey); err != nil {
				t.Fatalf("delete slot run %d: %v", i, err)
			}
		}
		if _, err := slots.GetSlot(ctx, storage.SessionKey); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("GetSlot after delete error = %v, want not found", err)
		}
	})

	t.Run("returned value is not aliased", func(t *testing.T) {
		slots := open(t)
		ctx := context.Background()
		value := []byte(`"abc"`)
		if err := slots.PutSlot(ctx, storage.SessionKey, value); err != nil {
			t.Fatalf("put slot: %v", err)
		}
		value[1] = 'z'
		got, err := slots.GetSlot(ctx, storage.SessionKey)
		if err != nil {
			t.Fatalf("get slot: %v", err)
		}
		if string(got) != `"abc"` {
			t.Fatalf("GetSlot = %q, stored value changed through caller slice", got)
		}
	})

	t.Run("blank key rejected", func(t *testing.T) {
		slots := open(t)
		if err := slots.PutSlot(context.Background(), " ", []byte(`1`)); err == nil {
			t.Fatal("expected blank key error")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		slots := open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := slots.GetSlot(ctx, storage.SessionKey); !errors.Is(err, context.Canceled) {
			t.Fatalf("GetSlot error = %v, want context.Canceled", err)
		}
	})
}
