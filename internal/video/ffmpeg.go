package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpegSampler shells out to ffprobe/ffmpeg: probe the duration, then
// grab one JPEG frame from the midpoint of the clip.
type FFmpegSampler struct {
	ffmpegPath  string
	ffprobePath string
}

func NewFFmpeg(ffmpegPath, ffprobePath string) *FFmpegSampler {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegSampler{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

func (s *FFmpegSampler) MidFrame(ctx context.Context, video []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "clip-*.mp4")
	if err != nil {
		return nil, fmt.Errorf("create temp video: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(video); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("write temp video: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp video: %w", err)
	}

	mid := s.midpoint(ctx, tmp.Name())

	var out bytes.Buffer
	var errOut bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-v", "error",
		"-ss", strconv.FormatFloat(mid, 'f', 3, 64),
		"-i", tmp.Name(),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	)
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extraction: %w (%s)", err, strings.TrimSpace(errOut.String()))
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no frame")
	}
	return out.Bytes(), nil
}

// midpoint probes the clip duration and returns its half. Zero (frame at
// the very start) when the duration cannot be determined.
func (s *FFmpegSampler) midpoint(ctx context.Context, path string) float64 {
	out, err := exec.CommandContext(ctx, s.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || d <= 0 {
		return 0
	}
	return d / 2
}
