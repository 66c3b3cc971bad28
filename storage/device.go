// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Device is a storage host connection.
type Device interface {
	// Connect reports whether the device is attached and ready. It is
	// polled until it returns true.
	Connect() bool
}

// Mounter mounts the filesystem of a connected device.
type Mounter interface {
	// Mount returns a filesystem in which the volume is reachable as
	// "/<volume>".
	Mount(volume string, dev Device) (afero.Fs, error)
}

// DirDevice is ready once Path exists as a directory, which is how an
// automounted USB stick shows up on a host.
type DirDevice struct {
	Path string
}

func (d DirDevice) Connect() bool {
	fi, err := os.Stat(d.Path)
	return err == nil && fi.IsDir()
}

// OSMounter exposes volumes that the host already mounted under Root.
// Volume "USB" with Root "/media" is read from /media/USB.
type OSMounter struct {
	Root string
}

func (m OSMounter) Mount(volume string, _ Device) (afero.Fs, error) {
	dir := filepath.Join(m.Root, volume)

	fi, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	return afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), m.Root)), nil
}
