// Append-only, durably flushed trace log file shared by every emitting goroutine
package tracelog

import (
	"errors"
	"fmt"
	"io/fs"
	"nodetrace/internal/global"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Creates a writer for the configured path. The file is not touched until the first append.
func New(cfg Config) (writer *Writer, err error) {
	cfg.setDefaults()

	info, err := os.Stat(cfg.FilePath)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("trace log path %s is a directory", cfg.FilePath)
		return
	}
	err = nil

	writer = &Writer{
		Namespace: []string{global.NSTracer, global.NSWriter},
		path:      filepath.Clean(cfg.FilePath),
		mode:      cfg.FileMode,
		fullSync:  cfg.FullSync,
	}
	return
}

// Location of the trace log
func (writer *Writer) Path() (path string) {
	path = writer.path
	return
}

// Opens the log for appending and takes the exclusive advisory lock.
// Caller must hold the writer mutex.
func (writer *Writer) open() (err error) {
	dir := filepath.Dir(writer.path)
	err = os.MkdirAll(dir, global.DefaultDirMode)
	if err != nil {
		err = fmt.Errorf("%w: failed to create trace log directory: %w", ErrIO, err)
		return
	}

	file, err := os.OpenFile(writer.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, writer.mode)
	if err != nil {
		err = fmt.Errorf("%w: failed to open trace log: %w", ErrIO, err)
		return
	}

	err = writer.lock(file)
	if err != nil {
		return
	}

	writer.sink = file
	return
}

// Takes the lock on an already present log without creating it.
// Held reports whether the log existed and is now owned by this writer.
// Caller must hold the writer mutex.
func (writer *Writer) lockExisting() (held bool, err error) {
	file, err := os.OpenFile(writer.path, os.O_APPEND|os.O_WRONLY, 0)
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
		return
	}
	if err != nil {
		err = fmt.Errorf("%w: failed to open trace log: %w", ErrIO, err)
		return
	}

	err = writer.lock(file)
	if err != nil {
		return
	}

	writer.sink = file
	held = true
	return
}

// Exclusive non-blocking advisory lock. Closes the file when the lock is refused.
func (writer *Writer) lock(file *os.File) (err error) {
	err = unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return
	}

	file.Close()
	if errors.Is(err, unix.EWOULDBLOCK) {
		err = fmt.Errorf("failed to lock %s: %w", writer.path, ErrLocked)
	} else {
		err = fmt.Errorf("%w: failed to lock trace log: %w", ErrIO, err)
	}
	return
}

// Releases the lock and handle. Caller must hold the writer mutex.
func (writer *Writer) release() (err error) {
	if writer.sink == nil {
		return
	}

	// Closing the descriptor drops the flock with it
	err = writer.sink.Close()
	writer.sink = nil
	if err != nil {
		err = fmt.Errorf("%w: failed to close trace log: %w", ErrIO, err)
	}
	return
}
