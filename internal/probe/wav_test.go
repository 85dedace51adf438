package probe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV writes n mono 16-bit samples at rate to path.
func writeWAV(t *testing.T, path string, rate, n int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, n),
		SourceBitDepth: 16,
	}
	for i := range buf.Data {
		buf.Data[i] = (i % 200) - 100
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.wav")
	writeWAV(t, path, 24000, 36000) // 1.5 s

	info, err := WAV(path)
	require.NoError(t, err)
	assert.Equal(t, 24000, info.SampleRate)
	assert.Equal(t, 1, info.Channels)
	assert.Equal(t, 16, info.BitDepth)
	assert.Equal(t, "mono", info.ChannelLabel())
	assert.InDelta(t, float64(1500*time.Millisecond), float64(info.Duration), float64(10*time.Millisecond))
	assert.Greater(t, info.Size, int64(72000))
}

func TestWAV_NotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msg.wav")
	require.NoError(t, os.WriteFile(path, []byte("#!AMR\n not a wave"), 0o644))

	_, err := WAV(path)
	assert.ErrorIs(t, err, ErrNotWAV)
}

func TestWAV_Missing(t *testing.T) {
	_, err := WAV(filepath.Join(t.TempDir(), "gone.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestChannelLabel(t *testing.T) {
	assert.Equal(t, "stereo", (&WAVInfo{Channels: 2}).ChannelLabel())
	assert.Equal(t, "6ch", (&WAVInfo{Channels: 6}).ChannelLabel())
}
