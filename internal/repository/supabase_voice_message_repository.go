package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"lusotown-backend/internal/database"
	"lusotown-backend/internal/domain/model"
	"lusotown-backend/internal/domain/repository"
)

// SupabaseVoiceMessageRepository persists voice message metadata in the
// voice_messages table.
type SupabaseVoiceMessageRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseVoiceMessageRepository(client *database.SupabaseClient) repository.VoiceMessageRepository {
	return &SupabaseVoiceMessageRepository{
		client: client,
	}
}

// voiceMessageInsert the insert payload; id and created_at come back from the
// database.
type voiceMessageInsert struct {
	ConversationID string  `json:"conversation_id"`
	SenderID       string  `json:"sender_id"`
	TargetUserID   string  `json:"target_user_id"`
	AudioURL       string  `json:"audio_url"`
	Transcription  string  `json:"transcription,omitempty"`
	DurationSecs   float64 `json:"duration_seconds"`
	Dialect        string  `json:"dialect,omitempty"`
}

func (r *SupabaseVoiceMessageRepository) Insert(ctx context.Context, message *model.VoiceMessage) (*model.VoiceMessage, error) {
	payload, err := json.Marshal(voiceMessageInsert{
		ConversationID: message.ConversationID,
		SenderID:       message.SenderID,
		TargetUserID:   message.TargetUserID,
		AudioURL:       message.AudioURL,
		Transcription:  message.Transcription,
		DurationSecs:   message.DurationSecs,
		Dialect:        message.Dialect,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize voice message: %w", err)
	}

	data, _, err := r.client.GetClient().From("voice_messages").
		Insert(string(payload), false, "", "representation", "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("voice message insert failed: %w", err)
	}

	var inserted []model.VoiceMessage
	if err := json.Unmarshal([]byte(data), &inserted); err != nil {
		return nil, fmt.Errorf("failed to parse voice message response: %w", err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("voice message insert returned no rows")
	}

	return &inserted[0], nil
}
