package keyarch

import "encoding/binary"

const (
	magic         = "KARC"
	formatVersion = 1
)

// Class names as stored in the class table. The archive is self-describing,
// but the favorites domain only ever produces this fixed vocabulary; anything
// else is rejected rather than decoded generically.
const (
	classDictionary = "dictionary"
	classArray      = "array"
	classData       = "data"
	classString     = "string"
	classNumber     = "number"
	classBool       = "bool"
	classNull       = "null"
)

// rawObject is one parsed object-table record before materialization.
// Which fields are meaningful depends on the class.
type rawObject struct {
	class string
	pairs [][2]uint32 // dictionary: (key UID, value UID)
	uids  []uint32    // array elements
	data  []byte      // data and string payloads
	num   int64
	flag  bool
}

type reader struct {
	data []byte
	off  int
}

func (r *reader) remaining() int { return len(r.data) - r.off }

func (r *reader) read(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, structuref("archive truncated at offset %d", r.off)
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) readUint16() (uint16, error) {
	b, err := r.read(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (r *reader) readUint32() (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (r *reader) readInt64() (int64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// Decode parses container bytes and materializes the root value. Shared
// references are resolved per referencing site; cyclic references fail with
// a StructureError.
func Decode(data []byte) (Value, error) {
	r := &reader{data: data}

	head, err := r.read(len(magic))
	if err != nil {
		return nil, err
	}
	if string(head) != magic {
		return nil, structuref("not a keyed archive: bad magic %q", head)
	}
	version, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, structuref("unsupported archive version %d", version)
	}

	classCount, err := r.readUint16()
	if err != nil {
		return nil, err
	}
	classes := make([]string, classCount)
	for i := range classes {
		n, err := r.readUint16()
		if err != nil {
			return nil, err
		}
		name, err := r.read(int(n))
		if err != nil {
			return nil, err
		}
		classes[i] = string(name)
	}

	objCount, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	rootUID, err := r.readUint32()
	if err != nil {
		return nil, err
	}
	// Every record carries at least a two-byte class id; a count beyond that
	// bound cannot be honest, so reject it before allocating.
	if int64(objCount)*2 > int64(r.remaining()) {
		return nil, structuref("archive truncated: object count %d exceeds remaining data", objCount)
	}
	objects := make([]rawObject, objCount)
	for i := range objects {
		if objects[i], err = parseObject(r, classes); err != nil {
			return nil, err
		}
	}
	if r.remaining() != 0 {
		return nil, structuref("%d trailing bytes after object table", r.remaining())
	}
	if rootUID >= objCount {
		return nil, structuref("root reference %d out of range (table has %d objects)", rootUID, objCount)
	}

	d := &decoder{objects: objects, active: make([]bool, objCount)}
	return d.materialize(rootUID)
}

func parseObject(r *reader, classes []string) (rawObject, error) {
	id, err := r.readUint16()
	if err != nil {
		return rawObject{}, err
	}
	if int(id) >= len(classes) {
		return rawObject{}, structuref("class id %d out of range (table has %d classes)", id, len(classes))
	}
	obj := rawObject{class: classes[id]}

	switch obj.class {
	case classDictionary:
		n, err := r.readUint32()
		if err != nil {
			return rawObject{}, err
		}
		if int64(n)*8 > int64(r.remaining()) {
			return rawObject{}, structuref("archive truncated in dictionary of %d entries", n)
		}
		obj.pairs = make([][2]uint32, n)
		for i := range obj.pairs {
			if obj.pairs[i][0], err = r.readUint32(); err != nil {
				return rawObject{}, err
			}
			if obj.pairs[i][1], err = r.readUint32(); err != nil {
				return rawObject{}, err
			}
		}
	case classArray:
		n, err := r.readUint32()
		if err != nil {
			return rawObject{}, err
		}
		if int64(n)*4 > int64(r.remaining()) {
			return rawObject{}, structuref("archive truncated in array of %d elements", n)
		}
		obj.uids = make([]uint32, n)
		for i := range obj.uids {
			if obj.uids[i], err = r.readUint32(); err != nil {
				return rawObject{}, err
			}
		}
	case classData, classString:
		n, err := r.readUint32()
		if err != nil {
			return rawObject{}, err
		}
		if obj.data, err = r.read(int(n)); err != nil {
			return rawObject{}, err
		}
	case classNumber:
		if obj.num, err = r.readInt64(); err != nil {
			return rawObject{}, err
		}
	case classBool:
		b, err := r.read(1)
		if err != nil {
			return rawObject{}, err
		}
		obj.flag = b[0] != 0
	case classNull:
	default:
		return rawObject{}, structuref("unknown class tag %q", obj.class)
	}
	return obj, nil
}

// decoder materializes table records into values. active marks container
// objects on the current materialization path; revisiting one means the
// table encodes a cycle.
type decoder struct {
	objects []rawObject
	active  []bool
}

func (d *decoder) materialize(uid uint32) (Value, error) {
	if uid >= uint32(len(d.objects)) {
		return nil, structuref("reference %d out of range (table has %d objects)", uid, len(d.objects))
	}
	obj := &d.objects[uid]

	switch obj.class {
	case classDictionary:
		if d.active[uid] {
			return nil, structuref("cyclic reference through object %d", uid)
		}
		d.active[uid] = true
		m := NewMap()
		for _, p := range obj.pairs {
			key, err := d.keyAt(p[0])
			if err != nil {
				return nil, err
			}
			if _, dup := m.Get(key); dup {
				return nil, structuref("duplicate dictionary key %q", key)
			}
			v, err := d.materialize(p[1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		d.active[uid] = false
		return m, nil
	case classArray:
		if d.active[uid] {
			return nil, structuref("cyclic reference through object %d", uid)
		}
		d.active[uid] = true
		s := NewSequence()
		for _, child := range obj.uids {
			v, err := d.materialize(child)
			if err != nil {
				return nil, err
			}
			s.Append(v)
		}
		d.active[uid] = false
		return s, nil
	case classData:
		return Blob(append([]byte(nil), obj.data...)), nil
	case classString:
		return Text(obj.data), nil
	case classNumber:
		return Integer(obj.num), nil
	case classBool:
		return Boolean(obj.flag), nil
	case classNull:
		return Null{}, nil
	}
	return nil, structuref("unknown class tag %q", obj.class)
}

func (d *decoder) keyAt(uid uint32) (string, error) {
	if uid >= uint32(len(d.objects)) {
		return "", structuref("key reference %d out of range (table has %d objects)", uid, len(d.objects))
	}
	obj := &d.objects[uid]
	if obj.class != classString {
		return "", structuref("dictionary key object %d is %q, not a string", uid, obj.class)
	}
	return string(obj.data), nil
}
