package silk

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/audconvert/internal/config"
	"github.com/backmassage/audconvert/internal/tool"
	"github.com/backmassage/audconvert/internal/tooltest"
)

func TestStripPrefix(t *testing.T) {
	dir := t.TempDir()
	input := append([]byte("\x02#!SILK_V3"), 0x14, 0x00, 0xaa, 0xbb, 0xcc)
	src := filepath.Join(dir, "msg.aud")
	dst := filepath.Join(dir, "msg.silk")
	require.NoError(t, os.WriteFile(src, input, 0o644))

	n, err := StripPrefix(src, dst)
	require.NoError(t, err)
	assert.Equal(t, int64(len(input)-1), n)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, input[1:], got)
	assert.Equal(t, "#!SILK_V3", string(got[:9]))
}

func TestStripPrefix_SingleByte(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "one.aud")
	dst := filepath.Join(dir, "one.silk")
	require.NoError(t, os.WriteFile(src, []byte{0x02}, 0o644))

	n, err := StripPrefix(src, dst)
	require.NoError(t, err)
	assert.Zero(t, n)
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestStripPrefix_Empty(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty.aud")
	require.NoError(t, os.WriteFile(src, nil, 0o644))

	_, err := StripPrefix(src, filepath.Join(dir, "empty.silk"))
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.NoFileExists(t, filepath.Join(dir, "empty.silk"))
}

func TestDecode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.SilkDecoder = tooltest.FakeDecoder(t, dir)

	in := filepath.Join(dir, "a.silk")
	out := filepath.Join(dir, "a.pcm")
	require.NoError(t, os.WriteFile(in, []byte("#!SILK_V3 frames"), 0o644))

	_, err := Decode(context.Background(), &cfg, in, out)
	require.NoError(t, err)
	assert.FileExists(t, out)
}

func TestDecode_MissingDecoder(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.SilkDecoder = filepath.Join(t.TempDir(), "nope", "decoder")

	_, err := Decode(context.Background(), &cfg, "a.silk", "a.pcm")
	assert.ErrorIs(t, err, tool.ErrNotFound)
}
