package term

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/audconvert/internal/config"
)

func TestConfigure_Never(t *testing.T) {
	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Equal(t, "plain", Paint(Red, "plain"))
}

func TestConfigure_Always(t *testing.T) {
	Configure(config.ColorAlways)
	defer Configure(config.ColorNever)

	assert.True(t, Enabled())
	got := Paint(Green, "ok")
	assert.Contains(t, got, "ok")
	assert.NotEqual(t, "ok", got, "expected ANSI sequences around text")
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}
