package tracing

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Sequential LogRecord reader.
// Only used by tooling and tests, the tracer itself never reads the log.
type Reader struct {
	src      *bufio.Reader
	consumed int64 // bytes read so far, including partial records
	offset   int64 // end of the last complete record
	records  int
}

func NewReader(r io.Reader) (reader *Reader) {
	reader = &Reader{
		src: bufio.NewReader(r),
	}
	return
}

func (reader *Reader) ReadByte() (b byte, err error) {
	b, err = reader.src.ReadByte()
	if err == nil {
		reader.consumed++
	}
	return
}

// Returns next complete event.
// io.EOF on a clean end of stream, ErrTruncated when the stream stops inside a record.
func (reader *Reader) Next() (event Event, err error) {
	length, err := binary.ReadUvarint(reader)
	if err == io.EOF {
		return
	} else if errors.Is(err, io.ErrUnexpectedEOF) {
		err = fmt.Errorf("%w: record %d ends inside its length prefix at offset %d", ErrTruncated, reader.records, reader.offset)
		return
	} else if err != nil {
		err = fmt.Errorf("%w: record %d has unreadable length prefix at offset %d: %v", ErrCorrupt, reader.records, reader.offset, err)
		return
	}

	if length > MaxRecordLen {
		err = fmt.Errorf("%w: record %d declares %d bytes (max %d) at offset %d", ErrCorrupt, reader.records, length, MaxRecordLen, reader.offset)
		return
	}

	payload := make([]byte, length)
	n, err := io.ReadFull(reader.src, payload)
	reader.consumed += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = fmt.Errorf("%w: record %d declares %d bytes but only %d remain at offset %d", ErrTruncated, reader.records, length, n, reader.offset)
		return
	} else if err != nil {
		err = fmt.Errorf("failed to read record %d: %w", reader.records, err)
		return
	}

	event, err = Decode(payload)
	if err != nil {
		err = fmt.Errorf("record %d at offset %d: %w", reader.records, reader.offset, err)
		return
	}

	reader.offset = reader.consumed
	reader.records++
	return
}

// Byte offset just past the last complete record
func (reader *Reader) Offset() (offset int64) {
	offset = reader.offset
	return
}

// Number of complete records returned so far
func (reader *Reader) Count() (count int) {
	count = reader.records
	return
}

// Reads every complete record. On error, events holds all records before the failing one.
func ReadAll(r io.Reader) (events []Event, err error) {
	reader := NewReader(r)
	for {
		var event Event
		event, err = reader.Next()
		if err == io.EOF {
			err = nil
			return
		} else if err != nil {
			return
		}
		events = append(events, event)
	}
}
