package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// Helpers around the ffmpeg/ffprobe/yt-dlp binaries. Every function takes a
// context so a stuck process dies with the caller's deadline.

// FetchRemoteVideo pulls a remote media URL into dir through yt-dlp,
// preferring an mp4 container when the source offers one. yt-dlp may pick a
// different extension than requested; when the expected file is absent the
// single file that landed in dir is taken instead. At most one usable output
// file exists per attempt.
func FetchRemoteVideo(ctx context.Context, originURL, dir, baseName string) (string, error) {
	outPath := filepath.Join(dir, baseName+".mp4")
	cmd := exec.CommandContext(ctx, "yt-dlp",
		"-f", "best[ext=mp4]/best",
		"-o", outPath,
		"--quiet",
		"--no-warnings",
		originURL,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %v, stderr: %s", err, stderr.String())
	}

	if _, err := os.Stat(outPath); err == nil {
		return outPath, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading scratch dir: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("download produced no file")
}

// ExtractThumbnail grabs a single frame one second in as a JPEG.
func ExtractThumbnail(ctx context.Context, videoPath, thumbPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", "1",
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "4",
		"-y", thumbPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg thumbnail failed: %v, stderr: %s", err, stderr.String())
	}
	return nil
}

// ProbeDuration returns the container duration in seconds.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return 0, fmt.Errorf("ffprobe error: %v output: %s", err, string(output))
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %w", err)
	}
	return duration, nil
}

// ComposeArgs builds the ffmpeg invocation that re-scores a video with an
// audio track. The codec pair is fixed (libx264/aac) so output is
// predictable; apad pads short audio with silence and -t clamps the output
// to the video duration, which also truncates audio that runs long.
func ComposeArgs(videoPath, audioPath, outPath string, videoDuration float64) []string {
	return []string{
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "libx264",
		"-c:a", "aac",
		"-af", "apad",
		"-t", fmt.Sprintf("%.3f", videoDuration),
		"-movflags", "+faststart",
		"-y", outPath,
	}
}

// ComposeMontage runs the re-score built by ComposeArgs.
func ComposeMontage(ctx context.Context, videoPath, audioPath, outPath string) error {
	duration, err := ProbeDuration(ctx, videoPath)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, "ffmpeg", ComposeArgs(videoPath, audioPath, outPath, duration)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg compose failed: %v, stderr: %s", err, stderr.String())
	}
	return nil
}

// SaveStream writes a stream to path, creating parent directories.
func SaveStream(r io.Reader, path string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return io.Copy(f, r)
}
