// Package tooltest writes fake external tools for tests. The fakes are
// /bin/sh scripts, so tests using them skip on Windows.
package tooltest

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// Script writes an executable shell script named name into dir and returns
// its path. body is the script without the shebang line.
func Script(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
	return path
}

// FakeFFmpeg writes a stand-in for ffmpeg that copies the file given to -i
// to the last positional argument, ignoring every other option. Each
// invocation's arguments are appended, one line per call, to log when log
// is non-empty.
func FakeFFmpeg(t testing.TB, dir, log string) string {
	t.Helper()
	body := `in=""; out=""
`
	if log != "" {
		body += `echo "$@" >> "` + log + `"
`
	}
	body += `while [ $# -gt 0 ]; do
  case "$1" in
    -i) in="$2"; shift 2 ;;
    -y|-hide_banner|-nostdin) shift ;;
    -*) shift 2 ;;
    *) out="$1"; shift ;;
  esac
done
[ -n "$in" ] && [ -n "$out" ] || { echo "usage: ffmpeg -i in out" >&2; exit 1; }
exec cp "$in" "$out"`
	return Script(t, dir, "ffmpeg", body)
}

// FakeDecoder writes a stand-in for the SILK decoder that copies its first
// positional argument to its second.
func FakeDecoder(t testing.TB, dir string) string {
	t.Helper()
	return Script(t, dir, "decoder", `[ $# -ge 2 ] || { echo "usage: decoder in out" >&2; exit 1; }
exec cp "$1" "$2"`)
}

// FailingTool writes a script that prints msg to stderr and exits with code.
func FailingTool(t testing.TB, dir, name, msg string, code int) string {
	t.Helper()
	return Script(t, dir, name, `echo "`+msg+`" >&2
exit `+strconv.Itoa(code))
}
