package kvsession

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Key is any engine-comparable value: a Go number, time.Time, string or
// []byte. Numbers compare as float64. Across types the order is
// number < date < string < binary.
type Key = interface{}

const (
	tagNumber byte = 0x10
	tagDate   byte = 0x20
	tagString byte = 0x30
	tagBinary byte = 0x40
)

// EncodeKey returns the order-preserving encoding of k.
func EncodeKey(k Key) ([]byte, error) {
	switch v := k.(type) {
	case int:
		return encodeInt(int64(v))
	case int8:
		return encodeNumber(tagNumber, float64(v))
	case int16:
		return encodeNumber(tagNumber, float64(v))
	case int32:
		return encodeNumber(tagNumber, float64(v))
	case int64:
		return encodeInt(v)
	case uint:
		return encodeUint(uint64(v))
	case uint8:
		return encodeNumber(tagNumber, float64(v))
	case uint16:
		return encodeNumber(tagNumber, float64(v))
	case uint32:
		return encodeNumber(tagNumber, float64(v))
	case uint64:
		return encodeUint(v)
	case float32:
		return encodeNumber(tagNumber, float64(v))
	case float64:
		return encodeNumber(tagNumber, v)
	case time.Time:
		return encodeNumber(tagDate, float64(v.UnixNano())/float64(time.Millisecond))
	case string:
		return append([]byte{tagString}, v...), nil
	case []byte:
		if v == nil {
			return nil, fmt.Errorf("%w: nil binary key", ErrInvalidKey)
		}
		return append([]byte{tagBinary}, v...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidKey, k)
	}
}

// DecodeKey reverses EncodeKey. Numbers decode as float64 and dates with
// millisecond precision.
func DecodeKey(b []byte) (Key, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty encoding", ErrInvalidKey)
	}

	switch b[0] {
	case tagNumber, tagDate:
		if len(b) != 9 {
			return nil, fmt.Errorf("%w: bad number length %d", ErrInvalidKey, len(b))
		}
		f := decodeNumber(b[1:])
		if b[0] == tagDate {
			return time.UnixMilli(int64(math.Round(f))), nil
		}
		return f, nil
	case tagString:
		return string(b[1:]), nil
	case tagBinary:
		return append([]byte{}, b[1:]...), nil
	default:
		return nil, fmt.Errorf("%w: unknown tag %x", ErrInvalidKey, b[0])
	}
}

//integers beyond 2^53 are only keys when float64 holds them exactly,
//otherwise neighbours would share one encoding
const maxExactInt = 1 << 53

func encodeInt(v int64) ([]byte, error) {
	if v > maxExactInt || v < -maxExactInt {
		f := float64(v)
		if f >= math.MaxInt64 || int64(f) != v {
			return nil, fmt.Errorf("%w: integer %d has no exact number form", ErrInvalidKey, v)
		}
	}
	return encodeNumber(tagNumber, float64(v))
}

func encodeUint(v uint64) ([]byte, error) {
	if v > maxExactInt {
		f := float64(v)
		if f >= math.MaxUint64 || uint64(f) != v {
			return nil, fmt.Errorf("%w: integer %d has no exact number form", ErrInvalidKey, v)
		}
	}
	return encodeNumber(tagNumber, float64(v))
}

func encodeNumber(tag byte, f float64) ([]byte, error) {
	if math.IsNaN(f) {
		return nil, fmt.Errorf("%w: NaN", ErrInvalidKey)
	}

	bits := math.Float64bits(f)
	if f == 0 {
		bits = 0
	}
	if f >= 0 {
		bits ^= 1 << 63
	} else {
		bits = ^bits
	}
	b := make([]byte, 9)
	b[0] = tag
	binary.BigEndian.PutUint64(b[1:], bits)
	return b, nil
}

func decodeNumber(b []byte) float64 {
	bits := binary.BigEndian.Uint64(b)
	if bits&(1<<63) != 0 {
		bits ^= 1 << 63
	} else {
		bits = ^bits
	}
	return math.Float64frombits(bits)
}
