package keyarch

import (
	"bytes"
	"encoding/binary"
	"errors"
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"empty map", NewMap()},
		{"empty sequence", NewSequence()},
		{"text", Text("Documents")},
		{"unicode text", Text("Téléchargements ⌘")},
		{"empty text", Text("")},
		{"blob", Blob{0x00, 0xff, 0x42}},
		{"empty blob", Blob{}},
		{"integer", Integer(42)},
		{"negative integer", Integer(-9000000000)},
		{"bool true", Boolean(true)},
		{"bool false", Boolean(false)},
		{"null", Null{}},
		{
			"flat favorites archive",
			mapOf(
				"items", NewSequence(),
				"properties", mapOf("com.apple.LSSharedFileList.ForceTemplateIcons", Boolean(true)),
			),
		},
		{
			"nested archive",
			mapOf(
				"items", NewSequence(
					mapOf(
						"uuid", Text("0f9c29e1-5a4d-4a91-8d53-111111111111"),
						"bookmark", Blob("opaque-token-bytes"),
						"visibility", Integer(0),
						"properties", NewMap(),
					),
					mapOf(
						"uuid", Text("0f9c29e1-5a4d-4a91-8d53-222222222222"),
						"bookmark", Blob{0x01, 0x02},
						"visibility", Integer(0),
					),
				),
				"properties", mapOf("flags", NewSequence(Integer(1), Null{}, Boolean(false))),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(tt.v)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !Equal(got, tt.v) {
				t.Errorf("Decode(Encode(v)) != v, got %#v", got)
			}
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	v := mapOf(
		"items", NewSequence(mapOf("uuid", Text("u"), "bookmark", Blob("b"))),
		"properties", NewMap(),
	)
	first, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	second, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Encode() produced different bytes for the same tree")
	}
}

func TestDecodeEncodeFixedPoint(t *testing.T) {
	v := mapOf(
		"items", NewSequence(mapOf("uuid", Text("u1")), mapOf("uuid", Text("u2"))),
		"properties", mapOf("nested", NewSequence(Blob("x"), Integer(-1))),
	)
	data, err := Encode(v)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	once, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	data2, err := Encode(once)
	if err != nil {
		t.Fatalf("re-Encode() error = %v", err)
	}
	if !bytes.Equal(data, data2) {
		t.Error("re-encoding a decode result changed the bytes")
	}
	twice, err := Decode(data2)
	if err != nil {
		t.Fatalf("re-Decode() error = %v", err)
	}
	if !Equal(once, twice) {
		t.Error("decode -> encode -> decode is not a fixed point")
	}
}

func TestEncodeNil(t *testing.T) {
	if _, err := Encode(nil); err == nil {
		t.Error("Encode(nil) error = nil, want StructureError")
	}
	if _, err := Encode(NewSequence(Text("ok"), nil)); err == nil {
		t.Error("Encode of sequence holding nil error = nil, want StructureError")
	}
}

// testArchive hand-assembles container bytes so decode can be exercised on
// tables no tree walk would emit: shared references, cycles, foreign classes.
type testArchive struct {
	buf bytes.Buffer
}

func newTestArchive(classes []string, objCount, root uint32) *testArchive {
	a := &testArchive{}
	a.buf.WriteString("KARC")
	a.u16(1)
	a.u16(uint16(len(classes)))
	for _, c := range classes {
		a.u16(uint16(len(c)))
		a.buf.WriteString(c)
	}
	a.u32(objCount)
	a.u32(root)
	return a
}

func (a *testArchive) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	a.buf.Write(b[:])
}

func (a *testArchive) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	a.buf.Write(b[:])
}

func (a *testArchive) dict(class uint16, pairs ...[2]uint32) {
	a.u16(class)
	a.u32(uint32(len(pairs)))
	for _, p := range pairs {
		a.u32(p[0])
		a.u32(p[1])
	}
}

func (a *testArchive) array(class uint16, uids ...uint32) {
	a.u16(class)
	a.u32(uint32(len(uids)))
	for _, uid := range uids {
		a.u32(uid)
	}
}

func (a *testArchive) str(class uint16, s string) {
	a.u16(class)
	a.u32(uint32(len(s)))
	a.buf.WriteString(s)
}

func (a *testArchive) bytes() []byte { return a.buf.Bytes() }

func TestDecodeSharedReferences(t *testing.T) {
	// {left: "shared", right: "shared"} with one table slot for the value.
	a := newTestArchive([]string{"dictionary", "string"}, 4, 0)
	a.dict(0, [2]uint32{1, 3}, [2]uint32{2, 3})
	a.str(1, "left")
	a.str(1, "right")
	a.str(1, "shared")

	got, err := Decode(a.bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := mapOf("left", Text("shared"), "right", Text("shared"))
	if !Equal(got, want) {
		t.Errorf("Decode() = %#v, want %#v", got, want)
	}
}

func TestDecodeSharedContainer(t *testing.T) {
	// An array referencing the same dictionary twice materializes an equal
	// sub-tree at both positions.
	a := newTestArchive([]string{"dictionary", "array", "string"}, 4, 0)
	a.array(1, 1, 1)
	a.dict(0, [2]uint32{2, 3})
	a.str(2, "k")
	a.str(2, "v")

	got, err := Decode(a.bytes())
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := NewSequence(mapOf("k", Text("v")), mapOf("k", Text("v")))
	if !Equal(got, want) {
		t.Errorf("Decode() = %#v, want %#v", got, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	selfDict := newTestArchive([]string{"dictionary", "string"}, 2, 0)
	selfDict.dict(0, [2]uint32{1, 0})
	selfDict.str(1, "self")

	selfArray := newTestArchive([]string{"array"}, 1, 0)
	selfArray.array(0, 0)

	mutual := newTestArchive([]string{"array"}, 2, 0)
	mutual.array(0, 1)
	mutual.array(0, 0)

	unknown := newTestArchive([]string{"gadget"}, 1, 0)
	unknown.u16(0)

	rootRange := newTestArchive([]string{"null"}, 1, 5)
	rootRange.u16(0)

	badKey := newTestArchive([]string{"dictionary", "number"}, 2, 0)
	badKey.dict(0, [2]uint32{1, 1})
	badKey.u16(1)
	badKey.u32(0)
	badKey.u32(42)

	dupKey := newTestArchive([]string{"dictionary", "string", "null"}, 3, 0)
	dupKey.dict(0, [2]uint32{1, 2}, [2]uint32{1, 2})
	dupKey.str(1, "twice")
	dupKey.u16(2)

	childRange := newTestArchive([]string{"array"}, 1, 0)
	childRange.array(0, 9)

	goodBytes, err := Encode(mapOf("items", NewSequence()))
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tests := []struct {
		name    string
		data    []byte
		wantMsg string
	}{
		{"empty input", nil, "truncated"},
		{"bad magic", append([]byte("XARC"), goodBytes[4:]...), "bad magic"},
		{"unsupported version", append([]byte("KARC\x00\x07"), goodBytes[6:]...), "unsupported archive version"},
		{"truncated table", goodBytes[:len(goodBytes)-3], "truncated"},
		{"trailing data", append(append([]byte(nil), goodBytes...), 0xde, 0xad), "trailing bytes"},
		{"self-referencing dictionary", selfDict.bytes(), "cyclic reference"},
		{"self-referencing array", selfArray.bytes(), "cyclic reference"},
		{"mutually referencing arrays", mutual.bytes(), "cyclic reference"},
		{"unknown class tag", unknown.bytes(), `unknown class tag "gadget"`},
		{"root out of range", rootRange.bytes(), "root reference 5 out of range"},
		{"non-string dictionary key", badKey.bytes(), "not a string"},
		{"duplicate dictionary key", dupKey.bytes(), `duplicate dictionary key "twice"`},
		{"child reference out of range", childRange.bytes(), "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			if err == nil {
				t.Fatal("Decode() error = nil, want StructureError")
			}
			var se *StructureError
			if !errors.As(err, &se) {
				t.Fatalf("Decode() error = %T, want *StructureError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Decode() error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}
