package ffmpeg

import "regexp"

// Pre-compiled regexes for classifying ffmpeg stderr output.
var (
	reUndetectedInput = regexp.MustCompile(
		`(?i)Invalid data found when processing input|` +
			`could not find codec parameters|` +
			`Failed to read frame size`)

	reUnsupportedOutput = regexp.MustCompile(
		`(?i)Unable to find a suitable output format|` +
			`Unknown encoder|` +
			`Encoder not found|` +
			`Automatic encoder selection failed|` +
			`is not a suitable output format`)

	reBadPCM = regexp.MustCompile(
		`(?i)Output file is empty|` +
			`nothing was encoded|` +
			`Output file #0 does not contain any stream`)
)

// MatchUndetectedInput reports whether stderr shows ffmpeg failed to
// recognize the input format.
func MatchUndetectedInput(stderr string) bool {
	return reUndetectedInput.MatchString(stderr)
}

// MatchUnsupportedOutput reports whether stderr shows the requested output
// format or encoder is unavailable in this ffmpeg build.
func MatchUnsupportedOutput(stderr string) bool {
	return reUnsupportedOutput.MatchString(stderr)
}

// MatchEmptyInput reports whether stderr shows there was nothing to encode
// (typically an empty PCM file from a failed decoder run).
func MatchEmptyInput(stderr string) bool {
	return reBadPCM.MatchString(stderr)
}

// Hint returns a short human explanation for a failed run, or "".
func Hint(stderr string) string {
	switch {
	case MatchUnsupportedOutput(stderr):
		return "this ffmpeg build cannot write the requested output format (try --format)"
	case MatchUndetectedInput(stderr):
		return "ffmpeg did not recognize the input data (file may not be a voice message)"
	case MatchEmptyInput(stderr):
		return "input contained no audio"
	default:
		return ""
	}
}
