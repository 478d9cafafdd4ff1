package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"clipmaster/config"
	"clipmaster/internal/dto"
	"clipmaster/internal/types"
	"clipmaster/log"
	"clipmaster/pkg/errors"
	"clipmaster/pkg/framesource"
)

// openFrameSource is swappable in tests.
var openFrameSource = func(ctx context.Context, videoPath, ffmpegPath, ffprobePath string) (types.FrameSource, error) {
	return framesource.Open(ctx, videoPath, ffmpegPath, ffprobePath)
}

// ComputeCrop determines the crop window that converts the video to the
// requested aspect ratio, centered on the faces found by sampling frames.
// When face tracking is off or face detection yields nothing usable, the
// window is centered on the frame instead.
func (s *Service) ComputeCrop(ctx context.Context, req dto.ComputeCropReq) (*dto.ComputeCropResData, error) {
	ratio, ok := types.AspectRatios[req.AspectRatio]
	if !ok {
		return nil, errors.WrapWithDetail(errors.CodeUnknownAspectRatio, "Unknown target aspect ratio",
			fmt.Sprintf("unsupported aspect ratio %q", req.AspectRatio), nil)
	}

	faceTracking := config.Conf.Reframe.FaceTrackingEnabled
	if req.FaceTracking != nil {
		faceTracking = *req.FaceTracking
	}
	sampleRate := req.SampleRate
	if sampleRate <= 0 {
		sampleRate = config.Conf.Reframe.SampleRate
	}

	source, err := openFrameSource(ctx, req.VideoPath, config.Conf.Reframe.FfmpegPath, config.Conf.Reframe.FfprobePath)
	if err != nil {
		return nil, errors.Wrap(errors.CodeFrameSourceFailed, "Frame source unavailable", err)
	}

	origWidth, origHeight := source.Size()
	cropWidth, cropHeight := cropDimensions(origWidth, origHeight, ratio)

	var faces []types.FaceBox
	usedFallback := false
	if faceTracking && s.FaceDetector.Available() {
		faces, err = s.sampleFaces(ctx, source, sampleRate)
		if err != nil {
			log.GetLogger().Warn("face sampling failed, using center fallback",
				zap.String("video", req.VideoPath), zap.Error(err))
			faces = nil
		}
	}
	if len(faces) == 0 {
		faces = []types.FaceBox{fallbackFaceBox(origWidth, origHeight)}
		usedFallback = true
	}

	crop := optimalCrop(faces, origWidth, origHeight, cropWidth, cropHeight)

	log.GetLogger().Info("crop window computed",
		zap.String("aspect_ratio", req.AspectRatio),
		zap.Int("face_samples", len(faces)),
		zap.Bool("used_fallback", usedFallback),
		zap.Int("crop_x", crop.X), zap.Int("crop_y", crop.Y))

	return &dto.ComputeCropResData{
		Crop:         crop,
		FrameWidth:   origWidth,
		FrameHeight:  origHeight,
		FaceSamples:  len(faces),
		UsedFallback: usedFallback,
	}, nil
}

// sampleFaces walks the video at the configured sample rate and collects
// every detected face box. Any error aborts sampling; the caller falls back
// to the centered box then.
func (s *Service) sampleFaces(ctx context.Context, source types.FrameSource, sampleRate int) ([]types.FaceBox, error) {
	fps := source.FPS()
	duration := source.Duration()
	if fps <= 0 || duration <= 0 {
		return nil, fmt.Errorf("invalid video metadata: fps=%v duration=%v", fps, duration)
	}

	frameInterval := int(math.Round(fps / float64(sampleRate)))
	if frameInterval < 1 {
		frameInterval = 1
	}
	totalFrames := int(fps * duration)

	var faces []types.FaceBox
	for i := 0; i < totalFrames; i += frameInterval {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		timestamp := float64(i) / fps
		if timestamp > duration {
			break
		}

		frame, err := source.FrameAt(ctx, timestamp)
		if err != nil {
			return nil, fmt.Errorf("frame sampling at %.3fs: %w", timestamp, err)
		}
		boxes, err := s.FaceDetector.Detect(ctx, frame)
		if err != nil {
			return nil, fmt.Errorf("face detection at %.3fs: %w", timestamp, err)
		}
		faces = append(faces, boxes...)
	}

	return faces, nil
}

// fallbackFaceBox is a third-of-frame box centered on the frame, standing in
// for a face when detection is unavailable or found nothing.
func fallbackFaceBox(width, height int) types.FaceBox {
	boxWidth := width / 3
	boxHeight := height / 3
	return types.FaceBox{
		X:      width/2 - boxWidth/2,
		Y:      height/2 - boxHeight/2,
		Width:  boxWidth,
		Height: boxHeight,
	}
}

// cropDimensions fits the target ratio inside the original frame, keeping
// the full extent of whichever axis the target does not constrain.
func cropDimensions(origWidth, origHeight int, ratio types.AspectRatio) (int, int) {
	targetAspect := float64(ratio.W) / float64(ratio.H)
	origAspect := float64(origWidth) / float64(origHeight)

	if targetAspect > origAspect {
		return origWidth, int(math.Round(float64(origWidth) / targetAspect))
	}
	return int(math.Round(float64(origHeight) * targetAspect)), origHeight
}

// optimalCrop centers the crop window on the mean of the face centers and
// clamps it inside the frame.
func optimalCrop(faces []types.FaceBox, origWidth, origHeight, cropWidth, cropHeight int) types.CropWindow {
	if len(faces) == 0 {
		return types.CropWindow{
			X:      (origWidth - cropWidth) / 2,
			Y:      (origHeight - cropHeight) / 2,
			Width:  cropWidth,
			Height: cropHeight,
		}
	}

	var sumX, sumY float64
	for _, face := range faces {
		sumX += float64(face.X + face.Width/2)
		sumY += float64(face.Y + face.Height/2)
	}
	avgX := sumX / float64(len(faces))
	avgY := sumY / float64(len(faces))

	return types.CropWindow{
		X:      clamp(int(avgX)-cropWidth/2, 0, origWidth-cropWidth),
		Y:      clamp(int(avgY)-cropHeight/2, 0, origHeight-cropHeight),
		Width:  cropWidth,
		Height: cropHeight,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
