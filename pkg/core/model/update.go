// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "fmt"

// UpdateStatus specifies the outcome of a food item update attempt.
// Only UpdateStatusUpdated carries an updated item. Other outcomes
// are expected conditions which are reported without an error, so
// callers may decide how they should be presented.
type UpdateStatus int

// Valid values for the UpdateStatus enum.
const (
	UpdateStatusInvalid UpdateStatus = iota // zero value is invalid

	UpdateStatusUpdated             // item was saved
	UpdateStatusNotFound            // no item with the asked ID
	UpdateStatusConcurrencyConflict // item was changed by another writer
)

// UpdateStatusError indicates an invalid update status value.
type UpdateStatusError int

// Error implements the error interface, returning a string
// representation of the UpdateStatusError.
func (e UpdateStatusError) Error() string {
	return fmt.Sprintf("invalid update status: %d", e)
}

// Validate returns nil if UpdateStatus value is valid. For invalid
// values, an instance of the UpdateStatusError will be returned.
func (us UpdateStatus) Validate() error {
	switch us {
	case UpdateStatusUpdated,
		UpdateStatusNotFound,
		UpdateStatusConcurrencyConflict:
		return nil
	default:
		return UpdateStatusError(us)
	}
}

// String converts the UpdateStatus enum to a string, mainly for
// logging. Invalid statuses cause a panic.
func (us UpdateStatus) String() string {
	switch us {
	case UpdateStatusUpdated:
		return "updated"
	case UpdateStatusNotFound:
		return "not-found"
	case UpdateStatusConcurrencyConflict:
		return "concurrency-conflict"
	default:
		panic(UpdateStatusError(us))
	}
}

// UpdateResult is the outcome of the food item update use case.
// Item is only set when Status is UpdateStatusUpdated.
// Vanished is only meaningful for the UpdateStatusNotFound status and
// reports that the item existed when it was looked up, but it was
// deleted before the updated item could be saved.
type UpdateResult struct {
	Status   UpdateStatus
	Item     *FoodItem
	Vanished bool
}
