package fileid

import (
	"fmt"

	"catalogkernel/internal/serialize"
)

// valueKind tags which Go type a serialized Record's value decodes to,
// since internal/serialize's Writer has no reflection-based "write any"
// primitive.
type valueKind int32

const (
	valueKindBool valueKind = iota
	valueKindInt
	valueKindInt64
	valueKindString
	valueKindStringVector
)

// Serialize writes f to internal/serialize's versioned binary archive
// format: a class tag, an entry count, then each (key, index, value)
// triple in insertion order. Deserialize reverses it; f.Equal(roundTripped)
// holds for every FileID this produces.
func (f *FileID) Serialize() ([]byte, error) {
	entries := f.Entries()
	w := serialize.NewWriter(serialize.ClassModuleFileID)
	w.WriteUint32(uint32(len(entries)))
	for _, e := range entries {
		w.WriteInt32(int32(e.Key))
		w.WriteInt32(int32(e.Index))
		switch v := e.Value.(type) {
		case bool:
			w.WriteInt32(int32(valueKindBool))
			w.WriteBool(v)
		case int:
			w.WriteInt32(int32(valueKindInt))
			w.WriteInt64(int64(v))
		case int64:
			w.WriteInt32(int32(valueKindInt64))
			w.WriteInt64(v)
		case string:
			w.WriteInt32(int32(valueKindString))
			w.WriteString(v)
		case []string:
			w.WriteInt32(int32(valueKindStringVector))
			w.WriteStringVector(v)
		default:
			return nil, fmt.Errorf("fileid: serialize: unsupported value type %T at key %d[%d]", v, e.Key, e.Index)
		}
	}
	return w.Bytes()
}

// Deserialize reconstructs a FileID from the archive Serialize produced.
func Deserialize(data []byte) (*FileID, error) {
	r, tag, err := serialize.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("fileid: deserialize: %w", err)
	}
	if tag != serialize.ClassModuleFileID {
		return nil, fmt.Errorf("fileid: deserialize: unexpected class tag %d", tag)
	}

	n := r.ReadUint32()
	entries := make([]Record, 0, n)
	for i := uint32(0); i < n; i++ {
		key := Key(r.ReadInt32())
		index := int(r.ReadInt32())
		kind := valueKind(r.ReadInt32())
		var value any
		switch kind {
		case valueKindBool:
			value = r.ReadBool()
		case valueKindInt:
			value = int(r.ReadInt64())
		case valueKindInt64:
			value = r.ReadInt64()
		case valueKindString:
			value = r.ReadString()
		case valueKindStringVector:
			value = r.ReadStringVector()
		default:
			return nil, fmt.Errorf("fileid: deserialize: unknown value kind %d for key %d[%d]", kind, key, index)
		}
		entries = append(entries, Record{Key: key, Index: index, Value: value})
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("fileid: deserialize: %w", err)
	}
	return FromEntries(entries), nil
}
