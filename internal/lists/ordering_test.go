package lists

import (
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/repositories"
	"github.com/desertthunder/films/internal/shared"
)

func memberships(orders map[int64]int, ids ...int64) []*models.Membership {
	out := make([]*models.Membership, 0, len(ids))
	for _, id := range ids {
		m := models.NewMembership("user", id, orders[id])
		m.SetID(id)
		out = append(out, m)
	}
	return out
}

func TestRenumber(t *testing.T) {
	tc := []struct {
		name   string
		orders map[int64]int
		ids    []int64
		want   []repositories.OrderChange
	}{
		{
			name:   "already dense",
			orders: map[int64]int{1: 1, 2: 2, 3: 3},
			ids:    []int64{1, 2, 3},
			want:   nil,
		},
		{
			name:   "gap after removal",
			orders: map[int64]int{1: 1, 3: 3, 4: 4},
			ids:    []int64{1, 3, 4},
			want:   []repositories.OrderChange{{ID: 3, Order: 2}, {ID: 4, Order: 3}},
		},
		{
			name:   "first removed",
			orders: map[int64]int{2: 2},
			ids:    []int64{2},
			want:   []repositories.OrderChange{{ID: 2, Order: 1}},
		},
		{
			name: "empty",
			ids:  nil,
			want: nil,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := renumber(memberships(tt.orders, tt.ids...))
			if !equalChanges(got, tt.want) {
				t.Errorf("renumber() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortChanges(t *testing.T) {
	current := memberships(map[int64]int{10: 1, 20: 2, 30: 3}, 10, 20, 30)

	tc := []struct {
		name    string
		ids     []int64
		want    []repositories.OrderChange
		wantErr error
	}{
		{
			name: "unchanged",
			ids:  []int64{10, 20, 30},
			want: nil,
		},
		{
			name: "swap first two",
			ids:  []int64{20, 10, 30},
			want: []repositories.OrderChange{{ID: 20, Order: 1}, {ID: 10, Order: 2}},
		},
		{
			name: "rotate",
			ids:  []int64{30, 10, 20},
			want: []repositories.OrderChange{{ID: 30, Order: 1}, {ID: 10, Order: 2}, {ID: 20, Order: 3}},
		},
		{
			name:    "unknown id",
			ids:     []int64{10, 20, 40},
			wantErr: shared.ErrNotFound,
		},
		{
			name:    "missing id",
			ids:     []int64{10, 20},
			wantErr: shared.ErrIncompleteSort,
		},
		{
			name:    "repeated id",
			ids:     []int64{10, 10, 20},
			wantErr: shared.ErrIncompleteSort,
		},
		{
			name:    "empty input",
			ids:     nil,
			wantErr: shared.ErrIncompleteSort,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sortChanges(current, tt.ids)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !equalChanges(got, tt.want) {
				t.Errorf("sortChanges() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserLocks(t *testing.T) {
	t.Run("serializes the same user", func(t *testing.T) {
		locks := newUserLocks()
		counter := 0

		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				unlock := locks.lock("alice")
				defer unlock()
				counter++
			}()
		}
		wg.Wait()

		if counter != 50 {
			t.Errorf("expected 50 increments, got %d", counter)
		}
		if n := locks.size(); n != 0 {
			t.Errorf("expected released locks to be dropped, got %d", n)
		}
	})

	t.Run("independent users", func(t *testing.T) {
		locks := newUserLocks()

		unlockA := locks.lock("alice")
		unlockB := locks.lock("bob")

		if n := locks.size(); n != 2 {
			t.Errorf("expected 2 held locks, got %d", n)
		}

		unlockA()
		unlockB()

		if n := locks.size(); n != 0 {
			t.Errorf("expected 0 held locks, got %d", n)
		}
	})
}

func equalChanges(a, b []repositories.OrderChange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
