package model

// VoiceMessage a recorded audio message between two community members.
// The audio blob lives in the voice-messages storage bucket; this is the
// metadata record.
type VoiceMessage struct {
	ID             string  `json:"id" db:"id"`
	ConversationID string  `json:"conversation_id" db:"conversation_id"`
	SenderID       string  `json:"sender_id" db:"sender_id"`
	TargetUserID   string  `json:"target_user_id" db:"target_user_id"`
	AudioURL       string  `json:"audio_url" db:"audio_url"`
	Transcription  string  `json:"transcription,omitempty" db:"transcription"`
	DurationSecs   float64 `json:"duration_seconds" db:"duration_seconds"`
	Dialect        string  `json:"dialect,omitempty" db:"dialect"`
	CreatedAt      string  `json:"created_at" db:"created_at"`
}

// TranslationRequest a message translation request from the UI.
type TranslationRequest struct {
	Text           string `json:"text" binding:"required"`
	SourceLanguage string `json:"source_language" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
	Dialect        string `json:"dialect,omitempty"`
}

// TranslationResult the translated text with the languages echoed back.
type TranslationResult struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}
