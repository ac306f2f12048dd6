// Package serialize implements a binary versioned archive format for
// every schema object: a 32-bit class tag followed by fields in
// declared order, enums written as signed ints, and length-prefixed
// vectors.
package serialize

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// ClassTag identifies the concrete schema-object type an archive blob
// holds, offset by module so tags never collide across packages.
type ClassTag uint32

const (
	moduleShift = 16

	ClassModuleCatalog  ClassTag = 1 << moduleShift
	ClassModuleFileID   ClassTag = 2 << moduleShift
	ClassModuleLogFile  ClassTag = 3 << moduleShift
	ClassModuleMetaBoot ClassTag = 4 << moduleShift
)

// Writer appends fields to a growing archive buffer in declared order.
type Writer struct {
	buf bytes.Buffer
	err error
}

// NewWriter starts an archive with its class tag as the first field.
func NewWriter(tag ClassTag) *Writer {
	w := &Writer{}
	w.WriteUint32(uint32(tag))
	return w
}

// Bytes returns the archive so far, or the first write error encountered.
func (w *Writer) Bytes() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.buf.Bytes(), nil
}

func (w *Writer) writeBinary(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(&w.buf, binary.BigEndian, v)
}

// WriteUint32 appends a raw uint32.
func (w *Writer) WriteUint32(v uint32) { w.writeBinary(v) }

// WriteInt32 appends a signed int32, the wire width for all enums.
func (w *Writer) WriteInt32(v int32) { w.writeBinary(v) }

// WriteInt64 appends a signed int64, used for object IDs and timestamps.
func (w *Writer) WriteInt64(v int64) { w.writeBinary(v) }

// WriteBool appends a boolean as one byte.
func (w *Writer) WriteBool(v bool) {
	var b byte
	if v {
		b = 1
	}
	w.writeBinary(b)
}

// WriteString appends a length-prefixed UTF-8 string.
func (w *Writer) WriteString(s string) {
	w.WriteUint32(uint32(len(s)))
	if w.err != nil {
		return
	}
	_, w.err = w.buf.WriteString(s)
}

// WriteStringVector appends a length-prefixed vector of strings.
func (w *Writer) WriteStringVector(v []string) {
	w.WriteUint32(uint32(len(v)))
	for _, s := range v {
		w.WriteString(s)
	}
}

// WriteInt64Vector appends a length-prefixed vector of int64s (ID lists
// such as an area's content-object IDs).
func (w *Writer) WriteInt64Vector(v []int64) {
	w.WriteUint32(uint32(len(v)))
	for _, x := range v {
		w.WriteInt64(x)
	}
}

// Reader consumes fields from an archive buffer in the same order Writer
// wrote them.
type Reader struct {
	buf *bytes.Reader
	err error
}

// NewReader opens an archive for reading and returns its class tag.
func NewReader(data []byte) (*Reader, ClassTag, error) {
	r := &Reader{buf: bytes.NewReader(data)}
	tag := r.ReadUint32()
	if r.err != nil {
		return nil, 0, r.err
	}
	return r, ClassTag(tag), nil
}

func (r *Reader) readBinary(v any) {
	if r.err != nil {
		return
	}
	r.err = binary.Read(r.buf, binary.BigEndian, v)
}

// ReadUint32 reads a raw uint32.
func (r *Reader) ReadUint32() uint32 {
	var v uint32
	r.readBinary(&v)
	return v
}

// ReadInt32 reads a signed int32.
func (r *Reader) ReadInt32() int32 {
	var v int32
	r.readBinary(&v)
	return v
}

// ReadInt64 reads a signed int64.
func (r *Reader) ReadInt64() int64 {
	var v int64
	r.readBinary(&v)
	return v
}

// ReadBool reads a one-byte boolean.
func (r *Reader) ReadBool() bool {
	var b byte
	r.readBinary(&b)
	return b != 0
}

// ReadString reads a length-prefixed UTF-8 string.
func (r *Reader) ReadString() string {
	n := r.ReadUint32()
	if r.err != nil || n == 0 {
		return ""
	}
	b := make([]byte, n)
	if _, err := r.buf.Read(b); err != nil {
		r.err = err
		return ""
	}
	return string(b)
}

// ReadStringVector reads a length-prefixed vector of strings.
func (r *Reader) ReadStringVector() []string {
	n := r.ReadUint32()
	if r.err != nil {
		return nil
	}
	out := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		out = append(out, r.ReadString())
	}
	return out
}

// ReadInt64Vector reads a length-prefixed vector of int64s.
func (r *Reader) ReadInt64Vector() []int64 {
	n := r.ReadUint32()
	if r.err != nil {
		return nil
	}
	out := make([]int64, 0, n)
	for i := uint32(0); i < n; i++ {
		out = append(out, r.ReadInt64())
	}
	return out
}

// Err returns the first error encountered by any Read* call.
func (r *Reader) Err() error {
	if r.err != nil {
		return fmt.Errorf("serialize: %w", r.err)
	}
	return nil
}
