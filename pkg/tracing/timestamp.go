package tracing

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// Current wall-clock time as seconds since epoch plus nanoseconds within that second
func Now() (ts Timestamp) {
	ts = FromTime(time.Now())
	return
}

// Decomposes t. Pre-epoch instants keep non-negative nanos (seconds rounds down).
func FromTime(t time.Time) (ts Timestamp) {
	ts = Timestamp{
		Seconds: t.Unix(),
		Nanos:   uint32(t.Nanosecond()),
	}
	return
}

func (ts Timestamp) AsTime() (t time.Time) {
	t = time.Unix(ts.Seconds, int64(ts.Nanos)).UTC()
	return
}

// Well-known protobuf form, for tools that speak google.protobuf.Timestamp
func (ts Timestamp) Proto() (pb *timestamppb.Timestamp) {
	pb = &timestamppb.Timestamp{
		Seconds: ts.Seconds,
		Nanos:   int32(ts.Nanos),
	}
	return
}

// Converts from the protobuf form, rejecting out of range nanos
func FromProto(pb *timestamppb.Timestamp) (ts Timestamp, err error) {
	if pb == nil {
		err = fmt.Errorf("%w: timestamp is missing", ErrEncoding)
		return
	}
	if pb.GetNanos() < 0 || int(pb.GetNanos()) > maxNanos {
		err = fmt.Errorf("%w: timestamp nanos %d outside 0-%d", ErrEncoding, pb.GetNanos(), maxNanos)
		return
	}

	ts = Timestamp{
		Seconds: pb.GetSeconds(),
		Nanos:   uint32(pb.GetNanos()),
	}
	return
}

func (ts Timestamp) String() (text string) {
	text = ts.AsTime().Format(time.RFC3339Nano)
	return
}
