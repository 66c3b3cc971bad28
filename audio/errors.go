// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrConverterConfig = errors.New("converter configuration rejected")
)
