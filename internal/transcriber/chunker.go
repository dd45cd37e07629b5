package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// TranscribeRecording transcribes the recording and formats every segment as
// `[hh:mm:ss - hh:mm:ss] text`, one per line. Files within the size limit go
// to the backend in a single call; larger files are split into fixed-length
// chunks whose segment times are shifted by the cumulative chunk offset so
// the output forms one global timeline.
func (s *implService) TranscribeRecording(ctx context.Context, recordingPath string) (string, error) {
	info, err := os.Stat(recordingPath)
	if err != nil {
		return "", fmt.Errorf("stat recording: %w", err)
	}

	if info.Size() <= s.maxBytes {
		segments, err := s.backend.Transcribe(ctx, recordingPath)
		if err != nil {
			return "", fmt.Errorf("transcribe: %w", err)
		}
		return formatSegments(segments, 0), nil
	}

	s.logger.Info(ctx, "Recording is %.2f MB, exceeding %d MB. Chunking audio...",
		float64(info.Size())/(1024*1024), s.maxBytes/(1024*1024))
	return s.transcribeChunked(ctx, recordingPath)
}

func (s *implService) transcribeChunked(ctx context.Context, recordingPath string) (string, error) {
	duration, err := s.probeDuration(ctx, recordingPath)
	if err != nil {
		return "", fmt.Errorf("probe duration: %w", err)
	}

	workDir, err := os.MkdirTemp(s.tempDir, "chunks-*")
	if err != nil {
		return "", fmt.Errorf("create chunk dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	chunkSec := s.chunkDur.Seconds()
	numChunks := int(duration / chunkSec)
	if duration > float64(numChunks)*chunkSec {
		numChunks++
	}

	var lines []string
	for i := 0; i < numChunks; i++ {
		offset := float64(i) * chunkSec
		chunkPath := filepath.Join(workDir, fmt.Sprintf("chunk_%d.wav", i))

		if err := s.extractChunk(ctx, recordingPath, chunkPath, offset, chunkSec); err != nil {
			return "", fmt.Errorf("extract chunk %d: %w", i, err)
		}

		segments, err := s.backend.Transcribe(ctx, chunkPath)
		// The chunk is deleted as soon as its transcription call returns,
		// success or not, to bound disk use on long recordings.
		if rmErr := os.Remove(chunkPath); rmErr != nil {
			s.logger.Warn(ctx, "Failed to remove chunk %s: %v", chunkPath, rmErr)
		}
		if err != nil {
			return "", fmt.Errorf("transcribe chunk %d: %w", i, err)
		}

		if formatted := formatSegments(segments, offset); formatted != "" {
			lines = append(lines, formatted)
		}
		s.logger.Debug(ctx, "Chunk %d/%d transcribed (%d segments)", i+1, numChunks, len(segments))
	}

	return strings.Join(lines, "\n"), nil
}

// extractChunk cuts a fixed-length mono 16kHz WAV slice out of the
// recording, the format transcription backends handle best.
func (s *implService) extractChunk(ctx context.Context, recordingPath, chunkPath string, offsetSec, durationSec float64) error {
	args := []string{
		"-ss", strconv.FormatFloat(offsetSec, 'f', 3, 64),
		"-t", strconv.FormatFloat(durationSec, 'f', 3, 64),
		"-i", recordingPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		chunkPath,
	}
	if _, err := s.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

func (s *implService) probeDuration(ctx context.Context, path string) (float64, error) {
	out, err := s.executor.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	return duration, nil
}
