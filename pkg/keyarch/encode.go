package keyarch

import (
	"bytes"
	"encoding/binary"
)

// encodedClasses is the class table Encode always writes; class ids in the
// object table are indexes into it.
var encodedClasses = []string{
	classDictionary,
	classArray,
	classData,
	classString,
	classNumber,
	classBool,
	classNull,
}

func classID(name string) uint16 {
	for i, c := range encodedClasses {
		if c == name {
			return uint16(i)
		}
	}
	panic("keyarch: class missing from encoder table: " + name)
}

type encoder struct {
	objects []rawObject
}

// Encode serializes the tree rooted at root. Table slots are assigned in a
// depth-first pre-order walk and sub-objects are never shared, so the same
// alias-free tree always produces the same bytes. The root always lands in
// slot zero. Encoding fails only on a nil value.
func Encode(root Value) ([]byte, error) {
	e := &encoder{}
	if _, err := e.add(root); err != nil {
		return nil, err
	}
	return e.serialize(), nil
}

func (e *encoder) add(v Value) (uint32, error) {
	if v == nil {
		return 0, structuref("cannot encode nil value")
	}
	uid := uint32(len(e.objects))
	e.objects = append(e.objects, rawObject{})

	switch val := v.(type) {
	case *Map:
		pairs := make([][2]uint32, 0, val.Len())
		for _, p := range val.pairs {
			key := e.addString(p.key)
			child, err := e.add(p.value)
			if err != nil {
				return 0, err
			}
			pairs = append(pairs, [2]uint32{key, child})
		}
		e.objects[uid] = rawObject{class: classDictionary, pairs: pairs}
	case *Sequence:
		uids := make([]uint32, 0, val.Len())
		for _, item := range val.values {
			child, err := e.add(item)
			if err != nil {
				return 0, err
			}
			uids = append(uids, child)
		}
		e.objects[uid] = rawObject{class: classArray, uids: uids}
	case Blob:
		e.objects[uid] = rawObject{class: classData, data: val}
	case Text:
		e.objects[uid] = rawObject{class: classString, data: []byte(val)}
	case Integer:
		e.objects[uid] = rawObject{class: classNumber, num: int64(val)}
	case Boolean:
		e.objects[uid] = rawObject{class: classBool, flag: bool(val)}
	case Null:
		e.objects[uid] = rawObject{class: classNull}
	default:
		return 0, structuref("cannot encode value of kind %d", v.Kind())
	}
	return uid, nil
}

func (e *encoder) addString(s string) uint32 {
	uid := uint32(len(e.objects))
	e.objects = append(e.objects, rawObject{class: classString, data: []byte(s)})
	return uid
}

func (e *encoder) serialize() []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	writeUint16(&buf, formatVersion)

	writeUint16(&buf, uint16(len(encodedClasses)))
	for _, name := range encodedClasses {
		writeUint16(&buf, uint16(len(name)))
		buf.WriteString(name)
	}

	writeUint32(&buf, uint32(len(e.objects)))
	writeUint32(&buf, 0) // root slot

	for _, obj := range e.objects {
		writeUint16(&buf, classID(obj.class))
		switch obj.class {
		case classDictionary:
			writeUint32(&buf, uint32(len(obj.pairs)))
			for _, p := range obj.pairs {
				writeUint32(&buf, p[0])
				writeUint32(&buf, p[1])
			}
		case classArray:
			writeUint32(&buf, uint32(len(obj.uids)))
			for _, uid := range obj.uids {
				writeUint32(&buf, uid)
			}
		case classData, classString:
			writeUint32(&buf, uint32(len(obj.data)))
			buf.Write(obj.data)
		case classNumber:
			writeInt64(&buf, obj.num)
		case classBool:
			if obj.flag {
				buf.WriteByte(1)
			} else {
				buf.WriteByte(0)
			}
		case classNull:
		}
	}
	return buf.Bytes()
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	buf.Write(b[:])
}
