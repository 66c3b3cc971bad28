// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"
)

// Disk is an in-memory filesystem whose directory listings come back in
// creation order, the way a FAT volume enumerates them.
type Disk struct {
	afero.Fs

	order map[string][]string

	// OpenErr fails Open for the given absolute paths.
	OpenErr map[string]error
	// CloseErr fails Close of directories opened at the given paths.
	CloseErr map[string]error
}

func NewDisk() *Disk {
	return &Disk{
		Fs:       afero.NewMemMapFs(),
		order:    make(map[string][]string),
		OpenErr:  make(map[string]error),
		CloseErr: make(map[string]error),
	}
}

func clean(name string) string { return path.Clean("/" + name) }

// WriteFile creates name with data, creating parent directories as needed.
func (d *Disk) WriteFile(name string, data []byte) error {
	name = clean(name)
	if err := d.mkdirAll(path.Dir(name)); err != nil {
		return err
	}
	if err := afero.WriteFile(d.Fs, name, data, 0o644); err != nil {
		return err
	}
	d.track(name)
	return nil
}

// AddDir creates a directory entry at name.
func (d *Disk) AddDir(name string) error {
	name = clean(name)
	if err := d.mkdirAll(name); err != nil {
		return err
	}
	d.track(name)
	return nil
}

func (d *Disk) mkdirAll(dir string) error {
	if dir == "/" {
		return nil
	}
	if _, err := d.Fs.Stat(dir); err == nil {
		return nil
	}
	if err := d.mkdirAll(path.Dir(dir)); err != nil {
		return err
	}
	if err := d.Fs.Mkdir(dir, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}
	d.track(dir)
	return nil
}

func (d *Disk) track(name string) {
	dir, base := path.Dir(name), path.Base(name)
	for _, n := range d.order[dir] {
		if n == base {
			return
		}
	}
	d.order[dir] = append(d.order[dir], base)
}

func (d *Disk) Open(name string) (afero.File, error) {
	name = clean(name)
	if err := d.OpenErr[name]; err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	f, err := d.Fs.Open(name)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil || !fi.IsDir() {
		return f, err
	}

	return &orderedDir{File: f, disk: d, dir: name, closeErr: d.CloseErr[name]}, nil
}

// orderedDir lists entries in creation order.
type orderedDir struct {
	afero.File

	disk     *Disk
	dir      string
	listed   bool
	closeErr error
}

func (o *orderedDir) Readdir(count int) ([]os.FileInfo, error) {
	if o.listed {
		if count > 0 {
			return nil, io.EOF
		}
		return nil, nil
	}
	o.listed = true

	names := o.disk.order[o.dir]
	infos := make([]os.FileInfo, 0, len(names))
	for _, n := range names {
		fi, err := o.disk.Fs.Stat(path.Join(o.dir, n))
		if err != nil {
			return infos, err
		}
		infos = append(infos, fi)
	}

	return infos, nil
}

func (o *orderedDir) Readdirnames(count int) ([]string, error) {
	infos, err := o.Readdir(count)
	names := make([]string, len(infos))
	for i, fi := range infos {
		names[i] = fi.Name()
	}
	return names, err
}

func (o *orderedDir) Close() error {
	err := o.File.Close()
	if o.closeErr != nil {
		return o.closeErr
	}
	return err
}
