// Package keyarch implements the keyed-archive container format that the
// favorites file is persisted in.
//
// An archive is a flat table of class-tagged objects plus a root reference.
// Collections do not nest their children inline; they reference other table
// entries by index (a UID). The same entry may be referenced from more than
// one place, so a decoded archive is a graph flattened into a table. The
// codec materializes that graph back into a plain value tree and rejects
// cyclic references, which the favorites domain never produces and could not
// represent.
//
// Wire layout, all integers big-endian:
//
//	envelope:  magic "KARC", version uint16
//	classes:   count uint16, then count class names (uint16 length + UTF-8)
//	objects:   count uint32, root uint32, then count records:
//	             classID uint16, payload depending on the class:
//	               dictionary  n uint32, n pairs of (key UID, value UID)
//	               array       n uint32, n UIDs
//	               data        length uint32, raw bytes
//	               string      length uint32, UTF-8 bytes
//	               number      int64
//	               bool        one byte
//	               null        empty
//
// Dictionary keys are UIDs of string objects. The key order stored in the
// table is the key order of the decoded Map, and Encode writes keys back in
// Map order, so consumers that compare maps structurally see exactly what
// was written.
//
// Encode walks the tree depth-first from the root and never emits shared
// table entries; Decode accepts sharing because other writers of the format
// may produce it. For an alias-free tree the same input always produces the
// same bytes.
package keyarch
