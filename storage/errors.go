// SPDX-License-Identifier: EPL-2.0

package storage

import "errors"

var (
	ErrMountFailure     = errors.New("unable to mount volume")
	ErrDeviceNotPresent = errors.New("storage device not present")
	ErrScanIO           = errors.New("can't scan volume")
	ErrNoPlayableFiles  = errors.New("no WAV files found on volume")
	ErrFileOpen         = errors.New("can't open audio file")
)
