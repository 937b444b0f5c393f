// Package container owns the favorites file on disk: locating it,
// bootstrapping a minimal archive when it is absent, and the
// read-decode / encode-write halves of every command.
package container

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/shelftools/fav/pkg/keyarch"
)

const forceTemplateIconsKey = "com.apple.LSSharedFileList.ForceTemplateIcons"

// Bootstrap returns the minimal valid archive written for a fresh
// installation: no items, and the template-icons flag the consuming UI
// expects to find.
func Bootstrap() *keyarch.Map {
	props := keyarch.NewMap()
	props.Set(forceTemplateIconsKey, keyarch.Boolean(true))

	root := keyarch.NewMap()
	root.Set("items", keyarch.NewSequence())
	root.Set("properties", props)
	return root
}

// Load reads and decodes the container at path. A missing file is not an
// error: a bootstrap archive is written first, then returned.
func Load(path string) (keyarch.Value, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Debugf("container %s missing, bootstrapping", path)
		root := Bootstrap()
		if err := Save(path, root); err != nil {
			return nil, err
		}
		return root, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	root, err := keyarch.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode container %s: %w", path, err)
	}
	return root, nil
}

// Save encodes root and writes it to path via a temp file rename, so a
// failed write never leaves a half-written container behind.
func Save(path string, root keyarch.Value) error {
	data, err := keyarch.Encode(root)
	if err != nil {
		return fmt.Errorf("encode container: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create container dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("write container: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write container: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write container: %w", err)
	}
	return nil
}

// Reload runs the configured reload command after a successful save, asking
// whatever consumes the container to pick up the change. Failures are
// warnings: the save already happened and must not be reported as failed.
func Reload(command string) {
	if command == "" {
		return
	}
	out, err := exec.Command("/bin/sh", "-c", command).CombinedOutput()
	if err != nil {
		logrus.Warnf("reload command failed: %v (%s)", err, out)
	}
}
