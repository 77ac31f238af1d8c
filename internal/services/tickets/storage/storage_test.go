package storage_test

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/louisbranch/ticketdesk/internal/platform/errors"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage"
	"github.com/louisbranch/ticketdesk/internal/services/tickets/storage/memory"
)

func TestReadJSONAbsent(t *testing.T) {
	var target []int
	found, err := storage.ReadJSON(context.Background(), memory.New(), storage.TicketsKey, &target)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if found {
		t.Fatal("expected absent slot")
	}
}

func TestReadJSONCorrupt(t *testing.T) {
	slots := memory.New()
	ctx := context.Background()
	if err := slots.PutSlot(ctx, storage.TicketsKey, []byte(`[{"id":`)); err != nil {
		t.Fatalf("put slot: %v", err)
	}

	var target []map[string]any
	_, err := storage.ReadJSON(ctx, slots, storage.TicketsKey, &target)
	if !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("ReadJSON error = %v, want ErrCorrupt", err)
	}
	if errors.Is(err, storage.ErrNotFound) {
		t.Fatal("corrupt payload must not look absent")
	}
	if got := apperrors.MetadataOf(err)["Key"]; got != storage.TicketsKey {
		t.Fatalf("corrupt metadata key = %q", got)
	}
}

func TestWriteThenReadJSON(t *testing.T) {
	slots := memory.New()
	ctx := context.Background()
	if err := storage.WriteJSON(ctx, slots, storage.TicketsKey, []int{3, 1, 2}); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var got []int
	found, err := storage.ReadJSON(ctx, slots, storage.TicketsKey, &got)
	if err != nil || !found {
		t.Fatalf("read json: found=%v err=%v", found, err)
	}
	if len(got) != 3 || got[0] != 3 || got[1] != 1 || got[2] != 2 {
		t.Fatalf("ReadJSON = %v, want order preserved", got)
	}
}

func TestNextSequence(t *testing.T) {
	slots := memory.New()
	ctx := context.Background()

	tests := []struct {
		floor int64
		want  int64
	}{
		{floor: 0, want: 1},
		{floor: 0, want: 2},
		{floor: 10, want: 11},
		{floor: 3, want: 12},
	}
	for _, tc := range tests {
		got, err := storage.NextSequence(ctx, slots, storage.TicketSequenceKey, tc.floor)
		if err != nil {
			t.Fatalf("next sequence: %v", err)
		}
		if got != tc.want {
			t.Fatalf("NextSequence(floor=%d) = %d, want %d", tc.floor, got, tc.want)
		}
	}
}

func TestNextSequenceCorrupt(t *testing.T) {
	slots := memory.New()
	ctx := context.Background()
	if err := slots.PutSlot(ctx, storage.TicketSequenceKey, []byte("seven")); err != nil {
		t.Fatalf("put slot: %v", err)
	}
	if _, err := storage.NextSequence(ctx, slots, storage.TicketSequenceKey, 0); !errors.Is(err, storage.ErrCorrupt) {
		t.Fatalf("NextSequence error = %v, want ErrCorrupt", err)
	}
}
