// SPDX-License-Identifier: EPL-2.0

package player

import "errors"

// ErrStreamIO is returned when sample data can't be read from the loaded
// file after it was opened and parsed.
var ErrStreamIO = errors.New("can't read audio data")
