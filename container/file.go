package container

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arloliu/aerzip/errs"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// WriteFile stores a compressed file at path, creating parent directories as needed.
//
// If the file already exists and overwrite is false, nothing is written and
// errs.ErrFileExists is returned.
func WriteFile(path string, data []byte, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, fileMode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", errs.ErrFileExists, path)
		}

		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// ReadFile loads a compressed file and validates its header.
//
// Returns:
//   - []byte: Whole file contents, ready for Decoder.Decode
//   - error: I/O errors or errs.ErrTruncatedFile / header errors from Disassemble
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if _, _, err := Disassemble(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return data, nil
}
