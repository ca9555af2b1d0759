package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CreateFile creates a file with the given name inside the provided directory, creating the directory if needed. If
// the directory is the empty string, the file is created relative to the current working directory.
func CreateFile(dir string, fileName string) (*os.File, error) {
	filePath := fileName
	if dir != "" {
		if err := MakeDirectory(dir); err != nil {
			return nil, err
		}
		filePath = filepath.Join(dir, fileName)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return file, nil
}

// FileExists indicates whether a regular file (not a directory) exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// GetFileNameWithoutExtension obtains a filename without the extension. This does not contain any preceding directory
// paths.
func GetFileNameWithoutExtension(filePath string) string {
	base := filepath.Base(filePath)
	return base[:len(base)-len(filepath.Ext(base))]
}

// MakeDirectory creates a directory at the given path, including any parent directories which do not exist.
func MakeDirectory(dirToMake string) error {
	dirInfo, err := os.Stat(dirToMake)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dirToMake, 0755)
		}
		return err
	}

	if !dirInfo.IsDir() {
		return fmt.Errorf("there is a file with the same name as %s", dirToMake)
	}
	return nil
}
