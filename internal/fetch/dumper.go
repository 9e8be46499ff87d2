package fetch

import (
	"context"
	"fmt"
	"os/exec"
)

// Binary dumper defaults
const (
	DefaultDumperBinary = "yt-dlp"
)

// BinaryDumper produces the flat listing by running the yt-dlp binary in
// dump mode. One invocation emits the whole listing: a playlist URL yields
// one NDJSON line per entry, a single video yields one JSON document.
type BinaryDumper struct {
	binaryPath string
}

// NewBinaryDumper creates a dumper using the yt-dlp binary on PATH
func NewBinaryDumper() *BinaryDumper {
	return &BinaryDumper{binaryPath: DefaultDumperBinary}
}

// SetBinaryPath overrides the yt-dlp binary location
func (d *BinaryDumper) SetBinaryPath(path string) {
	d.binaryPath = path
}

// DumpFlatListing runs yt-dlp and returns its raw stdout
func (d *BinaryDumper) DumpFlatListing(ctx context.Context, url string) (string, error) {
	cmd := exec.CommandContext(ctx, d.binaryPath, d.buildArgs(url)...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("listing dump failed: %v: %s", err, tailOf(exitErr.Stderr))
		}
		return "", fmt.Errorf("listing dump failed: %w", err)
	}
	return string(output), nil
}

// buildArgs assembles the flat-listing invocation
func (d *BinaryDumper) buildArgs(url string) []string {
	return []string{
		"--encoding", "utf-8",
		"--dump-json",
		"--flat-playlist",
		"--no-download",
		url,
	}
}

func tailOf(output []byte) string {
	const limit = 300
	if len(output) > limit {
		output = output[len(output)-limit:]
	}
	return string(output)
}
