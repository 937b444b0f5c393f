package bookmark

import (
	"encoding/binary"
	"os"
)

const (
	tokenMagic   = "bkmk"
	tokenVersion = 1
)

// FileCodec is a portable token codec: the token records the path it was
// minted for, and staleness is a stat check at resolve time. It stands in
// for platform alias formats that track targets across moves.
type FileCodec struct{}

// NewFileCodec returns a FileCodec.
func NewFileCodec() *FileCodec {
	return &FileCodec{}
}

// Encode mints a token for absPath. The target must exist.
func (c *FileCodec) Encode(absPath string) ([]byte, error) {
	if _, err := os.Stat(absPath); err != nil {
		return nil, &TokenError{Path: absPath, Msg: "target cannot be resolved", Err: err}
	}
	if len(absPath) > 0xffff {
		return nil, &TokenError{Path: absPath, Msg: "path too long for token"}
	}
	token := make([]byte, 0, len(tokenMagic)+4+len(absPath))
	token = append(token, tokenMagic...)
	token = binary.BigEndian.AppendUint16(token, tokenVersion)
	token = binary.BigEndian.AppendUint16(token, uint16(len(absPath)))
	token = append(token, absPath...)
	return token, nil
}

// Decode resolves a token. A token whose recorded target no longer exists
// resolves with stale set; only garbled token bytes are an error.
func (c *FileCodec) Decode(token []byte) (string, bool, error) {
	if len(token) < len(tokenMagic)+4 || string(token[:len(tokenMagic)]) != tokenMagic {
		return "", false, &TokenError{Msg: "corrupt token"}
	}
	version := binary.BigEndian.Uint16(token[4:6])
	if version != tokenVersion {
		return "", false, &TokenError{Msg: "unsupported token version"}
	}
	n := int(binary.BigEndian.Uint16(token[6:8]))
	if len(token) != len(tokenMagic)+4+n {
		return "", false, &TokenError{Msg: "corrupt token"}
	}
	path := string(token[8:])
	if _, err := os.Stat(path); err != nil {
		return path, true, nil
	}
	return path, false, nil
}
