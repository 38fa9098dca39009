package lists

import (
	"fmt"

	"github.com/desertthunder/films/internal/models"
	"github.com/desertthunder/films/internal/repositories"
	"github.com/desertthunder/films/internal/shared"
)

// renumber assigns 1..N to memberships in the order given and returns the rows whose order changed.
func renumber(memberships []*models.Membership) []repositories.OrderChange {
	var changes []repositories.OrderChange
	for i, m := range memberships {
		if order := i + 1; m.Order() != order {
			changes = append(changes, repositories.OrderChange{ID: m.ID(), Order: order})
		}
	}
	return changes
}

// sortChanges maps ids, the desired top-to-bottom order, onto memberships and returns the rows whose order changed.
//
// ids must be a permutation of the membership IDs: an unknown id yields [shared.ErrNotFound],
// a repeated or missing id yields [shared.ErrIncompleteSort].
func sortChanges(memberships []*models.Membership, ids []int64) ([]repositories.OrderChange, error) {
	current := make(map[int64]int, len(memberships))
	for _, m := range memberships {
		current[m.ID()] = m.Order()
	}

	seen := make(map[int64]bool, len(ids))
	var changes []repositories.OrderChange

	for i, id := range ids {
		order, ok := current[id]
		if !ok {
			return nil, fmt.Errorf("%w: membership %d", shared.ErrNotFound, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: membership %d appears more than once", shared.ErrIncompleteSort, id)
		}
		seen[id] = true

		if order != i+1 {
			changes = append(changes, repositories.OrderChange{ID: id, Order: i + 1})
		}
	}

	if len(ids) != len(memberships) {
		return nil, fmt.Errorf("%w: got %d of %d entries", shared.ErrIncompleteSort, len(ids), len(memberships))
	}

	return changes, nil
}
