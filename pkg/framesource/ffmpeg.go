// Package framesource implements types.FrameSource on top of ffmpeg/ffprobe.
// It only probes metadata and decodes single frames for sampling; encoding
// and muxing stay outside this service.
package framesource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"clipmaster/internal/deps"
	"clipmaster/internal/types"
)

// Source exposes a local video file's metadata and random frame access.
type Source struct {
	path       string
	ffmpegPath string

	width    int
	height   int
	fps      float64
	duration float64
}

type probeOutput struct {
	Streams []struct {
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		FrameRate string `json:"r_frame_rate"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Open probes videoPath and returns a frame source for it. The ffmpeg and
// ffprobe paths may be empty; PATH lookup is used then.
func Open(ctx context.Context, videoPath, ffmpegPath, ffprobePath string) (*Source, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	resolver := deps.NewPathResolver()
	inventory := deps.BuildDependencyInventory(ffmpegPath, ffprobePath)
	ffmpegState := resolver.Resolve(inventory[0])
	ffprobeState := resolver.Resolve(inventory[1])
	if ffprobeState.Status != deps.DependencyStatusOK {
		return nil, fmt.Errorf("ffprobe unavailable: %s", ffprobeState.Error)
	}
	if ffmpegState.Status != deps.DependencyStatusOK {
		return nil, fmt.Errorf("ffmpeg unavailable: %s", ffmpegState.Error)
	}

	cmd := exec.CommandContext(ctx, ffprobeState.ResolvedPath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-show_entries", "format=duration",
		"-of", "json",
		videoPath,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed for %s: %w", videoPath, err)
	}

	var probe probeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no video stream in %s", videoPath)
	}

	stream := probe.Streams[0]
	fps, err := parseFrameRate(stream.FrameRate)
	if err != nil {
		return nil, err
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(probe.Format.Duration), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration %q: %w", probe.Format.Duration, err)
	}

	return &Source{
		path:       videoPath,
		ffmpegPath: ffmpegState.ResolvedPath,
		width:      stream.Width,
		height:     stream.Height,
		fps:        fps,
		duration:   duration,
	}, nil
}

func (s *Source) Size() (int, int) {
	return s.width, s.height
}

func (s *Source) FPS() float64 {
	return s.fps
}

func (s *Source) Duration() float64 {
	return s.duration
}

// FrameAt decodes the frame nearest timestampSec as JPEG bytes.
func (s *Source) FrameAt(ctx context.Context, timestampSec float64) (types.Frame, error) {
	cmd := exec.CommandContext(ctx, s.ffmpegPath,
		"-ss", strconv.FormatFloat(timestampSec, 'f', 3, 64),
		"-i", s.path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "mjpeg",
		"pipe:1",
	)
	out, err := cmd.Output()
	if err != nil {
		return types.Frame{}, fmt.Errorf("ffmpeg frame extraction at %.3fs failed: %w", timestampSec, err)
	}
	if len(out) == 0 {
		return types.Frame{}, fmt.Errorf("ffmpeg produced no frame at %.3fs", timestampSec)
	}

	return types.Frame{
		TimestampSec: timestampSec,
		Width:        s.width,
		Height:       s.height,
		Data:         out,
	}, nil
}

// parseFrameRate converts ffprobe's rational frame rate ("30000/1001") to fps.
func parseFrameRate(raw string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), "/", 2)
	if len(parts) == 1 {
		fps, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse frame rate %q: %w", raw, err)
		}
		return fps, nil
	}

	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse frame rate %q: %w", raw, err)
	}
	den, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || den == 0 {
		return 0, fmt.Errorf("failed to parse frame rate %q", raw)
	}
	return num / den, nil
}
