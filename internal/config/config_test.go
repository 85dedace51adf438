package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/home/me/voice", "/home/me/voice"},
		{"single trailing slash", "/home/me/voice/", "/home/me/voice"},
		{"multiple trailing slashes", "/home/me/voice///", "/home/me/voice"},
		{"root path", "/", "/"},
		{"relative path", "voice", "voice"},
		{"relative with slash", "voice/", "voice"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDirArg(tt.in))
		})
	}
}

func TestNormalizeAudioBitrate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"64", "64k", false},
		{"64k", "64k", false},
		{"128K", "128k", false},
		{"96kbps", "96k", false},
		{" 32k ", "32k", false},
		{"", "", true},
		{"0", "", true},
		{"-8k", "", true},
		{"fast", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeAudioBitrate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_ColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    ColorMode
		wantErr bool
	}{
		{"auto is valid", ColorAuto, false},
		{"always is valid", ColorAlways, false},
		{"never is valid", ColorNever, false},
		{"empty is invalid", "", true},
		{"rainbow is invalid", "rainbow", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.ColorMode = tt.mode
			err := cfg.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestValidate_OutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		want    string
		wantErr bool
	}{
		{"mp3", "mp3", "mp3", false},
		{"leading dot and case", ".OGG", "ogg", false},
		{"empty", "", "", true},
		{"path separator", "a/b", "", true},
		{"intermediate wav", "wav", "", true},
		{"intermediate amr", "amr", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.OutputFormat = tt.format
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.OutputFormat)
		})
	}
}

func TestValidate_Limits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.Jobs = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.CheckOnly = true
	cfg.ToolTimeout = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiresInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InputDir = ""
	assert.Error(t, cfg.Validate(), "Validate() should fail without an input dir")

	cfg.InputDir = "/in"
	assert.NoError(t, cfg.Validate())

	cfg.SilkDecoder = ""
	assert.Error(t, cfg.Validate(), "Validate() should fail with an empty decoder path")
}

func TestValidate_CheckOnlySkipsInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CheckOnly = true
	cfg.InputDir = ""
	assert.NoError(t, cfg.Validate())
}

func TestOutputInsideInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   bool
	}{
		{"separate directories", "/voice/in", "/voice/out", false},
		{"output equals input", "/voice", "/voice", true},
		{"output inside input", "/voice", "/voice/2024_01_01_00_00_00_converted", true},
		{"output is parent of input", "/voice/sub", "/voice", false},
		{"similar prefix not nested", "/voice", "/voice2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputInsideInput(tt.input, tt.output))
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "./decoder", cfg.SilkDecoder)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, ".", cfg.OutputBase)
	assert.Equal(t, "s16le", cfg.PCMFormat)
	assert.Equal(t, 24000, cfg.PCMSampleRate)
	assert.Equal(t, 1, cfg.PCMChannels)
	assert.Equal(t, 1, cfg.Jobs)
	assert.Equal(t, 2*time.Minute, cfg.ToolTimeout)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
	assert.False(t, cfg.DryRun)
}

func TestParse_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Parse(&cfg, []string{"voice/"}, "test"))

	assert.Equal(t, "voice", cfg.InputDir)
	assert.Equal(t, "./decoder", cfg.SilkDecoder)
	assert.Equal(t, 2*time.Minute, cfg.ToolTimeout)
	assert.Equal(t, "64k", cfg.AudioBitrate)
	assert.Equal(t, ColorAuto, cfg.ColorMode)
}

func TestParse_Flags(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{
		"-s", "/opt/silk/decoder",
		"--ffmpeg", "/usr/local/bin/ffmpeg",
		"--timeout", "30s",
		"-o", "/tmp/out/",
		"-j", "4",
		"--format", "ogg",
		"--bitrate", "32",
		"--amr-header", "amr_header/amr_header.bin",
		"-d", "-v",
		"--color", "never",
		"-l", "/tmp/audconvert.log",
		"/data/voice",
	}
	require.NoError(t, Parse(&cfg, args, "test"))

	assert.Equal(t, "/data/voice", cfg.InputDir)
	assert.Equal(t, "/opt/silk/decoder", cfg.SilkDecoder)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, 30*time.Second, cfg.ToolTimeout)
	assert.Equal(t, "/tmp/out", cfg.OutputBase)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, "ogg", cfg.OutputFormat)
	assert.Equal(t, "32", cfg.AudioBitrate)
	assert.Equal(t, "amr_header/amr_header.bin", cfg.AMRHeaderPath)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, ColorNever, cfg.ColorMode)
	assert.Equal(t, "/tmp/audconvert.log", cfg.LogFile)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "32k", cfg.AudioBitrate)
}

func TestParse_LongDecoderFlag(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Parse(&cfg, []string{"--silk-decoder", "bin/decoder", "in"}, "test"))
	assert.Equal(t, "bin/decoder", cfg.SilkDecoder)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus", "in"}},
		{"bad color", []string{"--color", "rainbow", "in"}},
		{"bad duration", []string{"--timeout", "soon", "in"}},
		{"two positionals", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			assert.Error(t, Parse(&cfg, tt.args, "test"))
		})
	}
}
