// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import "fmt"

// MismatchingIDError indicates that a request identified a food item
// by one ID in its path, while its body carried another ID.
// The first element is the path ID and the second element is the
// body ID. It is usually wrapped by BadRequest.
type MismatchingIDError [2]int64

// Error returns a string representation of `mie` error instance
// naming both of the path and body IDs.
func (mie *MismatchingIDError) Error() string {
	return fmt.Sprintf(
		"ID mismatch: URL ID (%d) does not match Body ID (%d).",
		mie[0], mie[1],
	)
}
