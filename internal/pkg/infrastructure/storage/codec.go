package storage

import (
	"bytes"
	"fmt"

	"github.com/diwise/eventity/pkg/eventity/types"
	"github.com/vmihailenco/msgpack/v5"
)

// entries are persisted as the two element msgpack array [timestamp, patch]

func encodeEntry(timestamp int64, patch types.Patch) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeArrayLen(2); err != nil {
		return nil, err
	}
	if err := enc.EncodeInt(timestamp); err != nil {
		return nil, err
	}
	if err := enc.Encode(patch); err != nil {
		return nil, fmt.Errorf("failed to encode patch for field %q: %w", patch.Field, err)
	}

	return buf.Bytes(), nil
}

func decodeEntry(data []byte) (types.Entry, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	n, err := dec.DecodeArrayLen()
	if err != nil {
		return types.Entry{}, err
	}
	if n != 2 {
		return types.Entry{}, fmt.Errorf("malformed entry: expected 2 elements, found %d", n)
	}

	timestamp, err := dec.DecodeInt64()
	if err != nil {
		return types.Entry{}, fmt.Errorf("malformed entry timestamp: %w", err)
	}

	patch := types.Patch{}
	if err := dec.Decode(&patch); err != nil {
		return types.Entry{}, fmt.Errorf("malformed entry patch: %w", err)
	}

	return types.Entry{Timestamp: timestamp, Patch: patch}, nil
}
