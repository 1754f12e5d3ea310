// Package speech wraps the remote audio conversion provider behind two
// blocking capabilities: transcribe and synthesize. No audio or text is
// retained across calls.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/mindwell-labs/mindwell/backend/internal/config"
)

// Service is the conversion provider client. One shared instance serves all
// HTTP conversion requests.
type Service struct {
	client openai.Client
	cfg    config.SpeechConfig
}

// NewService creates the conversion client from config.
func NewService(cfg config.SpeechConfig) *Service {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(time.Duration(cfg.Timeout) * time.Second),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Service{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}
}

// Transcribe converts uploaded audio bytes to text in a single round trip.
// The filename hint only informs format detection on the provider side.
func (s *Service) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if filename == "" {
		filename = "audio.webm"
	}

	transcription, err := s.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(s.cfg.ASRModel),
		File:  openai.File(bytes.NewReader(audio), filename, "application/octet-stream"),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	return transcription.Text, nil
}

// Synthesize converts text to audio bytes in a single round trip. An empty
// voice falls back to the configured default.
func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = s.cfg.TTSVoice
	}

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.cfg.TTSModel),
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		Input:          text,
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormat(s.cfg.TTSFormat),
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesized audio: %w", err)
	}

	return audio, nil
}

// Format returns the audio container produced by Synthesize.
func (s *Service) Format() string {
	return s.cfg.TTSFormat
}
