package utils

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeDuration returns the media duration in whole seconds.
func ProbeDuration(videoPath string) (int64, error) {
	out, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return 0, errors.WithMessage(err, "ffprobe failed")
	}
	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, errors.WithMessage(err, "failed to parse ffprobe output")
	}
	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, errors.WithMessage(err, "invalid duration in ffprobe output")
	}
	return int64(math.Round(seconds)), nil
}

// ExtractThumbnail grabs the first frame of the video as a jpg.
func ExtractThumbnail(videoPath, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return "", errors.WithMessage(err, "failed to create thumbnail dir")
	}
	outputPath := filepath.Join(outputDir, "thumbnail.jpg")
	err := ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"ss":      "00:00:00",
			"vframes": "1",
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", errors.WithMessage(err, "failed to extract thumbnail")
	}
	return outputPath, nil
}
