package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-pos/models"
)

// tableTransitions is the table lifecycle:
// available -> in_use -> needs_cleaning -> available.
var tableTransitions = map[models.TableStatus]models.TableStatus{
	models.TableStatusAvailable:     models.TableStatusInUse,
	models.TableStatusInUse:         models.TableStatusNeedsCleaning,
	models.TableStatusNeedsCleaning: models.TableStatusAvailable,
}

func ValidTableStatus(s models.TableStatus) bool {
	_, ok := tableTransitions[s]
	return ok
}

// CanTransition reports whether a table may move from one status to
// another. Staying in the same status is always allowed.
func CanTransition(from, to models.TableStatus) error {
	if !ValidTableStatus(to) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if from == to {
		return nil
	}
	if next, ok := tableTransitions[from]; ok && next == to {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// StatusAfterItemAdded is the status a table takes once an item lands in its
// cart. A table waiting to be cleaned cannot take orders.
func StatusAfterItemAdded(current models.TableStatus) (models.TableStatus, error) {
	switch current {
	case models.TableStatusAvailable, models.TableStatusInUse:
		return models.TableStatusInUse, nil
	default:
		return current, fmt.Errorf("%w: cannot add items while table is %s", ErrInvalidTransition, current)
	}
}

// StatusAfterCartCleared is the status after the cart of a table is
// emptied. Clearing an already empty cart leaves the status alone.
func StatusAfterCartCleared(current models.TableStatus, hadItems bool) models.TableStatus {
	if hadItems && current == models.TableStatusInUse {
		return models.TableStatusNeedsCleaning
	}
	return current
}

// StatusAfterCleaning is the result of the explicit clean-table action.
func StatusAfterCleaning(current models.TableStatus) (models.TableStatus, error) {
	if current != models.TableStatusNeedsCleaning {
		return current, fmt.Errorf("%w: table is %s, not %s", ErrInvalidTransition, current, models.TableStatusNeedsCleaning)
	}
	return models.TableStatusAvailable, nil
}
