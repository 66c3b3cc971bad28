// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultRetryDelay is the pause between device connect polls.
const DefaultRetryDelay = 50 * time.Millisecond

// Options tune a Volume.
type Options struct {
	// Limit caps the catalog; entries past it are dropped silently.
	// Zero or less keeps every entry.
	Limit int
	// RetryDelay is the pause between Device.Connect polls.
	RetryDelay time.Duration
	// ConnectTimeout bounds the connect polling. Zero waits forever.
	ConnectTimeout time.Duration
	Logger         *zerolog.Logger
}

// DefaultOptions keeps the first DefaultCatalogLimit files and polls the
// device every DefaultRetryDelay until it shows up.
func DefaultOptions() Options {
	return Options{
		Limit:      DefaultCatalogLimit,
		RetryDelay: DefaultRetryDelay,
	}
}

// Volume is a storage volume that is mounted at most once and scanned at
// most once.
//
// A failed mount or scan is not retried; the same error is returned by
// every later call.
type Volume struct {
	name    string
	dev     Device
	mounter Mounter
	opts    Options
	log     zerolog.Logger

	fs       afero.Fs
	mountErr error

	scanned bool
	catalog *Catalog
	scanErr error
}

// NewVolume returns an unmounted volume. Nothing touches the device until
// the first call that needs the filesystem.
func NewVolume(name string, dev Device, mounter Mounter, opts Options) *Volume {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Volume{
		name:    name,
		dev:     dev,
		mounter: mounter,
		opts:    opts,
		log:     log.With().Str("volume", name).Logger(),
	}
}

func (v *Volume) Name() string { return v.name }

// Root is the absolute path of the volume's root directory.
func (v *Volume) Root() string { return "/" + v.name }

// Path is the absolute path of a file in the volume root.
func (v *Volume) Path(name string) string { return path.Join(v.Root(), name) }

func (v *Volume) Mounted() bool { return v.fs != nil }

func (v *Volume) Scanned() bool { return v.scanned }

// Catalog returns the scanned catalog, or nil before a successful scan.
func (v *Volume) Catalog() *Catalog { return v.catalog }

// EnsureMounted connects the device and mounts its filesystem on first use.
func (v *Volume) EnsureMounted() error {
	if v.fs != nil {
		return nil
	}
	if v.mountErr != nil {
		return v.mountErr
	}

	if err := v.connect(); err != nil {
		v.mountErr = err
		v.log.Warn().Err(err).Msg("device never became ready")
		return err
	}

	mounted, err := v.mounter.Mount(v.name, v.dev)
	if err != nil {
		v.mountErr = fmt.Errorf("%w %s: %w", ErrMountFailure, v.Root(), err)
		v.log.Warn().Err(err).Msg("mount failed")
		return v.mountErr
	}

	v.fs = mounted
	v.log.Debug().Msg("volume mounted")

	return nil
}

func (v *Volume) connect() error {
	start := time.Now()
	for !v.dev.Connect() {
		if v.opts.ConnectTimeout > 0 && time.Since(start) >= v.opts.ConnectTimeout {
			return fmt.Errorf("%w %s: %w after %v", ErrMountFailure, v.Root(), ErrDeviceNotPresent, v.opts.ConnectTimeout)
		}
		time.Sleep(v.opts.RetryDelay)
	}
	return nil
}

// Scan lists the volume root once and keeps the playable files in
// directory order.
func (v *Volume) Scan() (*Catalog, error) {
	if v.scanned {
		return v.catalog, v.scanErr
	}
	v.scanned = true

	if err := v.EnsureMounted(); err != nil {
		v.scanErr = err
		return nil, err
	}

	cat, err := v.scan()
	if err != nil {
		v.scanErr = err
		v.log.Warn().Err(err).Msg("scan failed")
		return nil, err
	}

	v.catalog = cat
	v.log.Debug().Int("files", cat.Len()).Msg("volume scanned")

	return cat, nil
}

func (v *Volume) scan() (*Catalog, error) {
	root := v.Root() + "/"

	dir, err := v.fs.Open(v.Root())
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%w)", ErrScanIO, root, err)
	}

	entries, readErr := dir.Readdir(-1)
	closeErr := dir.Close()

	if readErr != nil {
		return nil, fmt.Errorf("%w: %s (%w)", ErrScanIO, root, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("%w: error closing %s (%w)", ErrScanIO, root, closeErr)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if v.opts.Limit > 0 && len(names) >= v.opts.Limit {
			break
		}
		if e.IsDir() || !IsPlayable(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoPlayableFiles, root)
	}

	return &Catalog{names: names}, nil
}

// Open mounts the volume if needed and opens a file in its root.
func (v *Volume) Open(name string) (afero.File, error) {
	if err := v.EnsureMounted(); err != nil {
		return nil, err
	}

	p := v.Path(name)
	if !isBaseName(name) {
		return nil, fmt.Errorf("%w: %s (%w)", ErrFileOpen, v.Root()+"/"+name, fs.ErrInvalid)
	}

	f, err := v.fs.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%w)", ErrFileOpen, p, unwrapPath(err))
	}

	return f, nil
}

// isBaseName reports whether name names an entry of the volume root
// itself, so nothing outside the volume can be reached through it.
func isBaseName(name string) bool {
	return name != "" && name != "." && name != ".." && path.Base(name) == name
}

// unwrapPath drops the *fs.PathError shell so the path is not repeated in
// messages.
func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
