package probe

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// ErrNotWAV is returned for files without a valid RIFF/WAVE header.
var ErrNotWAV = errors.New("not a valid WAV file")

// WAVInfo holds the format of a waveform file.
type WAVInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	Size       int64
}

// WAV reads the header of the waveform file at path.
func WAV(path string) (*WAVInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotWAV)
	}
	dur, err := d.Duration()
	if err != nil {
		return nil, fmt.Errorf("read duration of %s: %w", path, err)
	}

	return &WAVInfo{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Duration:   dur,
		Size:       fi.Size(),
	}, nil
}

// ChannelLabel returns "mono", "stereo" or "<n>ch".
func (w *WAVInfo) ChannelLabel() string {
	switch w.Channels {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dch", w.Channels)
	}
}
