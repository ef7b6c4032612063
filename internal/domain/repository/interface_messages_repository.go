package repository

import (
	"context"

	"lusotown-backend/internal/domain/model"
)

// VoiceMessageRepository persistence for voice message metadata records.
type VoiceMessageRepository interface {
	Insert(ctx context.Context, message *model.VoiceMessage) (*model.VoiceMessage, error)
}

// TranslationProvider translates community messages between Portuguese
// dialects and English. Backed by an external generative API.
type TranslationProvider interface {
	Translate(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error)
}
