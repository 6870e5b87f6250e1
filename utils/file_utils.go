package utils

import (
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces fpath with data. The content goes to a temporary file in the same
// directory first, so a failed write leaves the previous file untouched.
func WriteFileAtomic(fpath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(fpath)
	f, err := os.CreateTemp(dir, "."+filepath.Base(fpath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	cleanup := func() {
		f.Close()
		os.Remove(tmpName)
	}

	if _, err := f.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := f.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, fpath); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// FileExists tells whether fpath exists and is a regular file.
func FileExists(fpath string) (bool, error) {
	info, err := os.Stat(fpath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}
