package ffmpeg

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

func TestBuild_ContainerToWAV(t *testing.T) {
	cfg := config.DefaultConfig()
	got := Build(&cfg, ContainerToWAV("/out/a.amr", "/out/a.wav"))
	want := []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error", "-i", "/out/a.amr", "/out/a.wav"}
	assert.Equal(t, want, got)
}

func TestBuild_PCMToWAV(t *testing.T) {
	cfg := config.DefaultConfig()
	got := Build(&cfg, PCMToWAV(&cfg, "/out/a.pcm", "/out/a.wav"))
	want := []string{
		"-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-f", "s16le", "-ar", "24000", "-ac", "1",
		"-i", "/out/a.pcm", "/out/a.wav",
	}
	assert.Equal(t, want, got)
}

func TestBuild_WAVToOutput(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Verbose = true
	got := Build(&cfg, WAVToOutput(&cfg, "/out/a.wav", "/out/a.mp3"))
	want := []string{
		"-hide_banner", "-nostdin", "-y", "-loglevel", "info",
		"-i", "/out/a.wav", "-b:a", "64k", "/out/a.mp3",
	}
	assert.Equal(t, want, got)
}

func TestBuild_OutputIsLastAndDistinct(t *testing.T) {
	cfg := config.DefaultConfig()
	args := Build(&cfg, WAVToOutput(&cfg, "/out/a.wav", "/out/a.mp3"))
	assert.Equal(t, "/out/a.mp3", args[len(args)-1])
	assert.NotEqual(t, args[len(args)-1], "/out/a.wav")
}

func TestMatchers(t *testing.T) {
	tests := []struct {
		name        string
		stderr      string
		undetected  bool
		unsupported bool
		empty       bool
	}{
		{"invalid data", "/out/a.amr: Invalid data found when processing input", true, false, false},
		{"frame size", "[amr @ 0x1] Failed to read frame size: Could not seek to 1026.", true, false, false},
		{"low score warning", "Format amr detected only with low score of 1, misdetection possible!", false, false, false},
		{"no muxer", "Unable to find a suitable output format for '/out/a.xyz'", false, true, false},
		{"no encoder", "Unknown encoder 'libmp3lame'", false, true, false},
		{"empty output", "Output file is empty, nothing was encoded", false, false, true},
		{"clean", "", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.undetected, MatchUndetectedInput(tt.stderr))
			assert.Equal(t, tt.unsupported, MatchUnsupportedOutput(tt.stderr))
			assert.Equal(t, tt.empty, MatchEmptyInput(tt.stderr))
		})
	}
	assert.Empty(t, Hint("all good"))
	assert.NotEmpty(t, Hint("Unknown encoder 'libmp3lame'"))
}

func TestRetryState_ForcesFormatOnce(t *testing.T) {
	job := ContainerToWAV("a.amr", "a.wav")
	rs := NewRetryState("amr")

	assert.Equal(t, RetryForceFormat, rs.Advance(&job, "Invalid data found when processing input"))
	assert.Equal(t, "amr", job.InputFormat)

	assert.Equal(t, RetryNone, rs.Advance(&job, "Invalid data found when processing input"))
}

func TestRetryState_NoFallback(t *testing.T) {
	job := ContainerToWAV("a.amr", "a.wav")
	rs := NewRetryState("")
	assert.Equal(t, RetryNone, rs.Advance(&job, "Invalid data found when processing input"))
	assert.Empty(t, job.InputFormat)
}

func TestRetryState_UnrelatedError(t *testing.T) {
	job := ContainerToWAV("a.amr", "a.wav")
	rs := NewRetryState("amr")
	assert.Equal(t, RetryNone, rs.Advance(&job, "No space left on device"))
}

func TestExecute_FakeFFmpeg(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = tooltest.FakeFFmpeg(t, dir, "")

	in := filepath.Join(dir, "a.pcm")
	out := filepath.Join(dir, "a.wav")
	require.NoError(t, os.WriteFile(in, []byte("samples"), 0o644))

	_, err := Execute(context.Background(), &cfg, PCMToWAV(&cfg, in, out))
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "samples", string(b))
}

func TestExecute_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	cfg := config.DefaultConfig()
	cfg.FFmpegPath = tooltest.FailingTool(t, t.TempDir(), "ffmpeg", "Invalid data found when processing input", 1)

	_, err := Execute(context.Background(), &cfg, ContainerToWAV("a.amr", "a.wav"))
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrExitStatus)
	var te *tool.Error
	require.ErrorAs(t, err, &te)
	assert.True(t, MatchUndetectedInput(te.Output))
}
