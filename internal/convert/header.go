package convert

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
)

// defaultAMRHeader is the AMR-NB single-channel container magic the chat
// application strips from its voice messages.
//
//go:embed amr_header.bin
var defaultAMRHeader []byte

// ErrEmptyHeader is returned for a header template with no bytes.
var ErrEmptyHeader = errors.New("AMR header template is empty")

// DefaultAMRHeader returns a copy of the embedded AMR header.
func DefaultAMRHeader() []byte {
	return append([]byte(nil), defaultAMRHeader...)
}

// LoadAMRHeader returns the header template at path, or the embedded
// header when path is empty.
func LoadAMRHeader(path string) ([]byte, error) {
	if path == "" {
		return DefaultAMRHeader(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read AMR header template: %w", err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyHeader)
	}
	return b, nil
}

// writeRepaired writes header followed by every byte of src to dst.
func writeRepaired(src, dst string, header []byte) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err = out.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	if _, err = io.Copy(out, in); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}
