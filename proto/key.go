package proto

import (
	"fmt"
	"math"
	"time"

	"github.com/zdnscloud/kvsession"
)

// ToKey converts a key to its wire form. Numbers travel as float64, which
// is how they compare inside the store anyway.
func ToKey(k kvsession.Key) (*Key, error) {
	encoded, err := kvsession.EncodeKey(k)
	if err != nil {
		return nil, err
	}
	decoded, err := kvsession.DecodeKey(encoded)
	if err != nil {
		return nil, err
	}

	switch v := decoded.(type) {
	case float64:
		return &Key{Kind: KeyKind_NUMBER, Number: v}, nil
	case time.Time:
		return &Key{Kind: KeyKind_DATE, Number: float64(v.UnixMilli())}, nil
	case string:
		return &Key{Kind: KeyKind_STRING, Text: v}, nil
	case []byte:
		return &Key{Kind: KeyKind_BINARY, Binary: v}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", kvsession.ErrInvalidKey, decoded)
	}
}

func FromKey(k *Key) (kvsession.Key, error) {
	if k == nil {
		return nil, fmt.Errorf("%w: missing key", kvsession.ErrInvalidKey)
	}

	switch k.Kind {
	case KeyKind_NUMBER:
		return k.Number, nil
	case KeyKind_DATE:
		return time.UnixMilli(int64(math.Round(k.Number))), nil
	case KeyKind_STRING:
		return k.Text, nil
	case KeyKind_BINARY:
		if k.Binary == nil {
			return []byte{}, nil
		}
		return k.Binary, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %v", kvsession.ErrInvalidKey, k.Kind)
	}
}
