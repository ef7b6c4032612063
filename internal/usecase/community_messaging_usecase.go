package usecase

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
)

// CommunityMessagingUsecase voice message delivery and message translation.
type CommunityMessagingUsecase struct {
	voiceRepo  repository.VoiceMessageRepository
	storage    repository.FileStorageRepository
	translator repository.TranslationProvider
}

func NewCommunityMessagingUsecase(
	voiceRepo repository.VoiceMessageRepository,
	storage repository.FileStorageRepository,
	translator repository.TranslationProvider,
) *CommunityMessagingUsecase {
	return &CommunityMessagingUsecase{
		voiceRepo:  voiceRepo,
		storage:    storage,
		translator: translator,
	}
}

// SendVoiceMessage uploads the audio blob and records the message metadata.
func (u *CommunityMessagingUsecase) SendVoiceMessage(ctx context.Context, senderID string, message model.VoiceMessage, filename, contentType string, audio io.Reader) (*model.VoiceMessage, error) {
	if senderID == "" {
		return nil, ErrNotAuthenticated
	}

	ext := path.Ext(filename)
	if ext == "" {
		ext = ".webm"
	}
	objectPath := fmt.Sprintf("%s/%s%s", senderID, uuid.New().String(), ext)

	audioURL, err := u.storage.Upload(ctx, repository.BucketVoiceMessages, objectPath, contentType, audio)
	if err != nil {
		return nil, fmt.Errorf("failed to upload voice message audio: %w", err)
	}

	message.SenderID = senderID
	message.AudioURL = audioURL

	created, err := u.voiceRepo.Insert(ctx, &message)
	if err != nil {
		return nil, fmt.Errorf("failed to save voice message: %w", err)
	}
	return created, nil
}

// TranslateMessage translates a community message between languages.
func (u *CommunityMessagingUsecase) TranslateMessage(ctx context.Context, req model.TranslationRequest) (*model.TranslationResult, error) {
	result, err := u.translator.Translate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to translate message: %w", err)
	}
	return result, nil
}
