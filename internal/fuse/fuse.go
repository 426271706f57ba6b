//go:build linux
// +build linux

package fuse

import (
	"context"
	"os"
	"slices"
	"sync"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/ostafen/apngkit/pkg/png"
)

// FrameEntry is a demuxed frame exposed as a regular file.
type FrameEntry struct {
	Name  string
	Inode uint64
	Data  []byte
}

// FrameFS is a flat read-only directory holding one PNG file per frame.
type FrameFS struct {
	mtx     sync.RWMutex
	entries map[string]FrameEntry
	names   []string

	modTime time.Time
}

// NewFrameFS names every frame with png.FrameName(template, i, len(frames)).
func NewFrameFS(frames [][]byte, template string) *FrameFS {
	fsys := &FrameFS{
		entries: make(map[string]FrameEntry, len(frames)),
		names:   make([]string, 0, len(frames)),
		modTime: time.Now(),
	}
	for i, data := range frames {
		name := png.FrameName(template, i, len(frames))
		fsys.entries[name] = FrameEntry{
			Name:  name,
			Inode: uint64(i + 2), // 1 is the root
			Data:  data,
		}
		fsys.names = append(fsys.names, name)
	}
	slices.Sort(fsys.names)
	return fsys
}

func (fsys *FrameFS) Root() (fs.Node, error) {
	return &Dir{
		fs: fsys,
	}, nil
}

// Dir implements both fs.Node and fs.HandleReadDirAller
type Dir struct {
	fs *FrameFS
}

func (d *Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = 1
	a.Mode = os.ModeDir | 0555
	a.Mtime = d.fs.modTime
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	if e, ok := d.fs.entries[name]; ok {
		return File{
			entry:   e,
			modTime: d.fs.modTime,
		}, nil
	}
	return nil, fuse.ENOENT
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	d.fs.mtx.RLock()
	defer d.fs.mtx.RUnlock()

	dirEntries := make([]fuse.Dirent, len(d.fs.names))
	for i, name := range d.fs.names {
		dirEntries[i] = fuse.Dirent{
			Inode: d.fs.entries[name].Inode,
			Name:  name,
			Type:  fuse.DT_File,
		}
	}
	return dirEntries, nil
}

// File implements both fs.Node and fs.HandleReader
type File struct {
	entry   FrameEntry
	modTime time.Time
}

func (f File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Inode = f.entry.Inode
	a.Mode = 0444
	a.Size = uint64(len(f.entry.Data))
	a.Mtime = f.modTime
	return nil
}

func (f File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	size := int64(len(f.entry.Data))
	if req.Offset >= size {
		resp.Data = []byte{}
		return nil
	}

	end := min(req.Offset+int64(req.Size), size)
	resp.Data = f.entry.Data[req.Offset:end]
	return nil
}
