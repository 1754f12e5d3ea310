package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/mindwell-labs/mindwell/backend/internal/config"
)

// Service is the completion provider client. One long-lived instance is
// constructed at service start and shared by every relay session.
type Service struct {
	chatModel model.ChatModel
	cfg       config.AIConfig
}

// NewService creates the completion client. It fails with a typed credential
// error when no API key is configured.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		cfg:       cfg,
	}, nil
}

// Model returns the model name used for every turn of a session.
func (s *Service) Model() string {
	return s.cfg.Model
}

// StreamReply opens a cancellable chunk stream for the composed message
// list. The returned reader yields incremental fragments until io.EOF;
// cancelling ctx aborts the stream promptly.
func (s *Service) StreamReply(ctx context.Context, messages []*schema.Message) (*schema.StreamReader[*schema.Message], error) {
	stream, err := s.chatModel.Stream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to open completion stream: %w", err)
	}
	return stream, nil
}
