package elevenlabs

// HeaderAPIKey is the HTTP header carrying the API key.
//
// Every ElevenLabs endpoint authenticates with this header.
const HeaderAPIKey = "xi-api-key"

// redactedKey is the fixed placeholder used whenever an API key is
// rendered as text. The real value never appears in logs or errors.
const redactedKey = "ApiKey(****)"

// APIKey wraps an API key string. Its textual representation is always
// redacted so the secret cannot leak through logging or %v/%#v formatting.
type APIKey struct {
	value string
}

// NewAPIKey wraps the given secret.
func NewAPIKey(s string) APIKey {
	return APIKey{value: s}
}

// Reveal returns the underlying secret for use in request headers.
func (k APIKey) Reveal() string {
	return k.value
}

// IsZero reports whether no key has been configured.
func (k APIKey) IsZero() bool {
	return k.value == ""
}

// String implements fmt.Stringer with a fixed redacted placeholder.
func (k APIKey) String() string {
	return redactedKey
}

// GoString keeps %#v output redacted as well.
func (k APIKey) GoString() string {
	return redactedKey
}
