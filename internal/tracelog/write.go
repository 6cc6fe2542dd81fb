package tracelog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sys/unix"
)

// Appends one complete record and flushes it to storage before returning.
// A failed append leaves the file exactly as it was before the call.
func (writer *Writer) Append(record []byte) (err error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	if writer.closed {
		err = ErrClosed
		return
	}
	if len(record) == 0 {
		return
	}

	defer func() {
		if err != nil {
			writer.metrics.AppendFailures.Add(1)
		}
	}()

	if writer.sink == nil {
		err = writer.open()
		if err != nil {
			return
		}
	}

	startSize, err := writer.liveSize()
	if err != nil {
		return
	}

	_, err = writeAll(writer.sink, record)
	if err == nil {
		err = writer.flush()
	}
	if err != nil {
		err = fmt.Errorf("%w: failed to append record: %w", ErrIO, err)

		rollbackErr := unix.Ftruncate(int(writer.sink.Fd()), startSize)
		if rollbackErr != nil {
			err = fmt.Errorf("%w (rollback to %d bytes also failed: %v)", err, startSize, rollbackErr)
		}
		return
	}

	writer.metrics.RecordsAppended.Add(1)
	writer.metrics.BytesAppended.Add(uint64(len(record)))
	return
}

// Size of the held log. Reopens first when the path no longer names the held file.
// Caller must hold the writer mutex.
func (writer *Writer) liveSize() (size int64, err error) {
	var stat unix.Stat_t
	err = unix.Fstat(int(writer.sink.Fd()), &stat)
	if err != nil {
		err = fmt.Errorf("%w: failed to stat trace log: %w", ErrIO, err)
		return
	}
	if stat.Nlink > 0 {
		size = stat.Size
		return
	}

	// Unlinked underneath us, appends would land in an orphaned inode
	err = writer.release()
	if err != nil {
		return
	}
	err = writer.open()
	if err != nil {
		return
	}
	err = unix.Fstat(int(writer.sink.Fd()), &stat)
	if err != nil {
		err = fmt.Errorf("%w: failed to stat trace log: %w", ErrIO, err)
		return
	}
	size = stat.Size
	return
}

// Sync calls, swapped out in tests to force flush failures
var (
	fsync     = unix.Fsync
	fdatasync = unix.Fdatasync
)

// Pushes written data past the page cache
func (writer *Writer) flush() (err error) {
	fd := int(writer.sink.Fd())
	if writer.fullSync {
		err = fsync(fd)
	} else {
		err = fdatasync(fd)
	}
	if err != nil {
		err = fmt.Errorf("failed to sync trace log: %w", err)
	}
	return
}

// Writes data until all bytes are accepted or the sink errors
func writeAll(sink io.Writer, data []byte) (written int, err error) {
	for len(data) > 0 {
		var n int
		n, err = sink.Write(data)
		written += n
		if err != nil {
			return
		}
		if n == 0 {
			err = io.ErrShortWrite
			return
		}
		data = data[n:] // remove the bytes that were successfully written
	}
	return
}

// Deletes the log. The next append recreates it empty. Missing file is not an error.
// Returns ErrLocked while another writer holds the log.
func (writer *Writer) Reset() (err error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	if writer.closed {
		err = ErrClosed
		return
	}

	if writer.sink == nil {
		var held bool
		held, err = writer.lockExisting()
		if err != nil {
			return
		}
		if !held {
			writer.metrics.Resets.Add(1)
			return
		}
	} else {
		// Held file may already be unlinked, make sure the lock covers what the path names
		_, err = writer.liveSize()
		if err != nil {
			return
		}
	}

	// Unlink while the lock is still held so no other writer can slip in between
	err = os.Remove(writer.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("%w: failed to remove trace log: %w", ErrIO, err)
		writer.release()
		return
	}

	err = writer.release()
	if err != nil {
		return
	}

	writer.metrics.Resets.Add(1)
	return
}

// Releases the file. Every later call returns ErrClosed.
func (writer *Writer) Close() (err error) {
	writer.mutex.Lock()
	defer writer.mutex.Unlock()

	if writer.closed {
		err = ErrClosed
		return
	}
	writer.closed = true

	err = writer.release()
	return
}
