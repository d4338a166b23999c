package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/marmos91/dittowatch/internal/bytesize"
	"github.com/marmos91/dittowatch/pkg/filehandle"
)

// Event operations.
const (
	OpCreate = "create"
	OpWrite  = "write"
	OpRemove = "remove"
	OpRename = "rename"
	OpChmod  = "chmod"
)

// Event is one filesystem change below the watch root, enriched with what
// the watcher learned by opening the path.
type Event struct {
	ID      string    `json:"id" yaml:"id"`
	Time    time.Time `json:"time" yaml:"time"`
	Op      string    `json:"op" yaml:"op"`
	Path    string    `json:"path" yaml:"path"`
	RelPath string    `json:"rel_path" yaml:"rel_path"`

	// Info is nil for remove and rename events and when the open failed.
	Info *filehandle.FileInfo `json:"info,omitempty" yaml:"info,omitempty"`

	// OpenedPath is the path the kernel reports for the opened handle. It
	// differs from Path when a parent directory moved in the meantime.
	OpenedPath string `json:"opened_path,omitempty" yaml:"opened_path,omitempty"`

	// Hash is the hex SHA-1 of a regular file's contents.
	Hash string `json:"hash,omitempty" yaml:"hash,omitempty"`

	Err   error  `json:"-" yaml:"-"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (e *Event) setErr(err error) {
	e.Err = err
	e.Error = err.Error()
}

// Line renders the event as a single line of text.
func (e Event) Line() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %-6s %s", e.Time.Format("15:04:05.000"), e.Op, e.RelPath)
	if e.Info != nil {
		fmt.Fprintf(&b, " %s", e.Info.FileType())
		if e.Info.IsRegular() {
			fmt.Fprintf(&b, " %s", bytesize.ByteSize(e.Info.Size))
		}
	}
	if e.Hash != "" {
		fmt.Fprintf(&b, " sha1=%s", e.Hash)
	}
	if e.OpenedPath != "" && e.OpenedPath != e.Path {
		fmt.Fprintf(&b, " opened=%s", e.OpenedPath)
	}
	if e.Error != "" {
		fmt.Fprintf(&b, " error=%q", e.Error)
	}
	return b.String()
}

// opName maps an fsnotify operation to a single event operation. When
// several bits are set the most significant change wins.
func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Chmod):
		return OpChmod
	default:
		return ""
	}
}

// pathExists reports whether the event's path should still be present.
func pathExists(op string) bool {
	return op != OpRemove && op != OpRename
}

// hashable reports whether the event may have changed file contents.
func hashable(op string) bool {
	return op == OpCreate || op == OpWrite
}
