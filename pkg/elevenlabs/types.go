package elevenlabs

// OutputFormat identifies the audio codec/bitrate of synthesized audio.
type OutputFormat string

// Common output formats accepted by the audio endpoints.
const (
	FormatMP32205032   OutputFormat = "mp3_22050_32"
	FormatMP34410032   OutputFormat = "mp3_44100_32"
	FormatMP34410064   OutputFormat = "mp3_44100_64"
	FormatMP34410096   OutputFormat = "mp3_44100_96"
	FormatMP344100128  OutputFormat = "mp3_44100_128"
	FormatMP344100192  OutputFormat = "mp3_44100_192"
	FormatPCM16000     OutputFormat = "pcm_16000"
	FormatPCM22050     OutputFormat = "pcm_22050"
	FormatPCM24000     OutputFormat = "pcm_24000"
	FormatPCM44100     OutputFormat = "pcm_44100"
	FormatULaw8000     OutputFormat = "ulaw_8000"
	FormatOpus48000128 OutputFormat = "opus_48000_128"
)

// VoiceSettings controls synthesis characteristics for a voice.
// Nil fields keep the voice's stored defaults.
type VoiceSettings struct {
	// Stability controls randomness between generations (0.0-1.0).
	Stability *float64 `json:"stability,omitempty"`

	// SimilarityBoost controls adherence to the original voice (0.0-1.0).
	SimilarityBoost *float64 `json:"similarity_boost,omitempty"`

	// Style amplifies the style of the original speaker (0.0-1.0).
	Style *float64 `json:"style,omitempty"`

	// UseSpeakerBoost boosts similarity at the cost of latency.
	UseSpeakerBoost *bool `json:"use_speaker_boost,omitempty"`

	// Speed adjusts the speaking rate (0.7-1.2).
	Speed *float64 `json:"speed,omitempty"`
}

// TextToSpeechRequest is the body for the text-to-speech endpoints.
type TextToSpeechRequest struct {
	// Text to convert to speech (required).
	Text string `json:"text"`

	// ModelID selects the synthesis model, e.g. "eleven_multilingual_v2".
	ModelID string `json:"model_id,omitempty"`

	// LanguageCode enforces an ISO 639-1 language for the model.
	LanguageCode string `json:"language_code,omitempty"`

	// VoiceSettings overrides the stored defaults for this request only.
	VoiceSettings *VoiceSettings `json:"voice_settings,omitempty"`

	// Seed makes generation best-effort deterministic (0-4294967295).
	Seed *uint32 `json:"seed,omitempty"`

	// PreviousText improves continuity when concatenating generations.
	PreviousText string `json:"previous_text,omitempty"`

	// NextText improves continuity when concatenating generations.
	NextText string `json:"next_text,omitempty"`
}

// Voice describes one voice in the account's library.
type Voice struct {
	VoiceID     string            `json:"voice_id"`
	Name        string            `json:"name"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description,omitempty"`
	PreviewURL  string            `json:"preview_url,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
	Samples     []VoiceSample     `json:"samples,omitempty"`
	Settings    *VoiceSettings    `json:"settings,omitempty"`
}

// VoiceSample is one audio sample attached to a voice.
type VoiceSample struct {
	SampleID  string `json:"sample_id"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Hash      string `json:"hash,omitempty"`
}

// GetVoicesResponse is the body of GET /v1/voices.
type GetVoicesResponse struct {
	Voices []Voice `json:"voices"`
}

// AddVoiceResponse is the body of POST /v1/voices/add.
type AddVoiceResponse struct {
	VoiceID string `json:"voice_id"`
}

// EditVoiceResponse is the body of POST /v1/voices/{voice_id}/edit.
type EditVoiceResponse struct {
	Status string `json:"status"`
}

// DeleteVoiceResponse is the body of DELETE /v1/voices/{voice_id}.
type DeleteVoiceResponse struct {
	Status string `json:"status"`
}

// Model describes an available synthesis model.
type Model struct {
	ModelID              string          `json:"model_id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	CanBeFinetuned       bool            `json:"can_be_finetuned"`
	CanDoTextToSpeech    bool            `json:"can_do_text_to_speech"`
	CanDoVoiceConversion bool            `json:"can_do_voice_conversion"`
	CanUseStyle          bool            `json:"can_use_style"`
	CanUseSpeakerBoost   bool            `json:"can_use_speaker_boost"`
	TokenCostFactor      float64         `json:"token_cost_factor"`
	Languages            []ModelLanguage `json:"languages,omitempty"`
}

// ModelLanguage is one language supported by a model.
type ModelLanguage struct {
	LanguageID string `json:"language_id"`
	Name       string `json:"name"`
}

// Subscription holds the account's plan and quota.
type Subscription struct {
	Tier                        string `json:"tier"`
	CharacterCount              int64  `json:"character_count"`
	CharacterLimit              int64  `json:"character_limit"`
	CanExtendCharacterLimit     bool   `json:"can_extend_character_limit"`
	Status                      string `json:"status"`
	NextCharacterCountResetUnix int64  `json:"next_character_count_reset_unix,omitempty"`
}

// UserResponse is the body of GET /v1/user.
type UserResponse struct {
	UserID       string       `json:"user_id"`
	Subscription Subscription `json:"subscription"`
	FirstName    string       `json:"first_name,omitempty"`
	IsNewUser    bool         `json:"is_new_user"`
}

// HistoryItem is one generated-audio record.
type HistoryItem struct {
	HistoryItemID string `json:"history_item_id"`
	RequestID     string `json:"request_id,omitempty"`
	VoiceID       string `json:"voice_id"`
	VoiceName     string `json:"voice_name,omitempty"`
	ModelID       string `json:"model_id,omitempty"`
	Text          string `json:"text"`
	DateUnix      int64  `json:"date_unix"`
	ContentType   string `json:"content_type,omitempty"`
	State         string `json:"state,omitempty"`
}

// GetHistoryResponse is the body of GET /v1/history.
type GetHistoryResponse struct {
	History           []HistoryItem `json:"history"`
	LastHistoryItemID string        `json:"last_history_item_id,omitempty"`
	HasMore           bool          `json:"has_more"`
}

// DeleteHistoryItemResponse is the body of DELETE /v1/history/{id}.
type DeleteHistoryItemResponse struct {
	Status string `json:"status"`
}

// SoundGenerationRequest is the body for POST /v1/sound-generation.
type SoundGenerationRequest struct {
	// Text describes the sound effect to generate (required).
	Text string `json:"text"`

	// Loop requests a smoothly looping effect.
	Loop bool `json:"loop"`

	// DurationSeconds fixes the output length (0.5-30.0). Nil lets the
	// server pick an optimal duration from the prompt.
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`

	// PromptInfluence controls prompt adherence (0.0-1.0).
	PromptInfluence float64 `json:"prompt_influence"`

	// ModelID selects the sound generation model.
	ModelID string `json:"model_id,omitempty"`
}

// SpeechToTextRequest holds transcription parameters. The audio itself
// is supplied separately as a multipart file.
type SpeechToTextRequest struct {
	// ModelID selects the transcription model, e.g. "scribe_v1".
	ModelID string

	// LanguageCode hints the audio's language (ISO 639-1).
	LanguageCode string

	// Diarize annotates which speaker is talking.
	Diarize bool

	// NumSpeakers bounds the speaker count when diarizing.
	NumSpeakers int

	// TagAudioEvents tags non-speech events like laughter.
	TagAudioEvents bool
}

// SpeechToTextResponse is the body of POST /v1/speech-to-text.
type SpeechToTextResponse struct {
	LanguageCode        string           `json:"language_code"`
	LanguageProbability float64          `json:"language_probability"`
	Text                string           `json:"text"`
	Words               []TranscriptWord `json:"words,omitempty"`
}

// TranscriptWord is one word (or spacing/event token) of a transcript.
type TranscriptWord struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
	Type      string  `json:"type,omitempty"`
	SpeakerID string  `json:"speaker_id,omitempty"`
}

// AgentSummary is one Conversational AI agent in a listing.
type AgentSummary struct {
	AgentID           string `json:"agent_id"`
	Name              string `json:"name"`
	CreatedAtUnixSecs int64  `json:"created_at_unix_secs,omitempty"`
}

// GetAgentsResponse is the body of GET /v1/convai/agents.
type GetAgentsResponse struct {
	Agents     []AgentSummary `json:"agents"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// SignedURLResponse carries a pre-authenticated conversation URL.
type SignedURLResponse struct {
	SignedURL string `json:"signed_url"`
}
