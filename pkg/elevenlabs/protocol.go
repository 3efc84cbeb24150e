package elevenlabs

// ttsProtocol is the protocol handler for the input-streaming TTS
// endpoint. The TTS protocol is fire-and-forget: text goes in, JSON
// frames with base64 audio come out. There are no topics, no request
// correlation, and no subscription mechanism, so every inbound frame is
// an opaque application event.
type ttsProtocol struct{}

func (ttsProtocol) Classify(data []byte) MessageKind {
	return KindEvent
}

func (ttsProtocol) CorrelationID(data []byte) (string, bool) {
	return "", false
}

func (ttsProtocol) Topic(data []byte) (string, bool) {
	return "", false
}

func (ttsProtocol) BuildSubscribe(topics []string, id string) []byte {
	return []byte("{}")
}

func (ttsProtocol) BuildUnsubscribe(topics []string, id string) []byte {
	return []byte("{}")
}

// conversationProtocol is the protocol handler for the Conversational
// AI endpoint. Events are JSON text frames tagged by a "type" field.
// Application-level pings are deliberately classified as plain events
// rather than auto-acknowledged: the caller observes the ping and sends
// the pong, so protocol liveness stays visible end-to-end.
type conversationProtocol struct{}

func (conversationProtocol) Classify(data []byte) MessageKind {
	return KindEvent
}

func (conversationProtocol) CorrelationID(data []byte) (string, bool) {
	return "", false
}

func (conversationProtocol) Topic(data []byte) (string, bool) {
	return "", false
}

func (conversationProtocol) BuildSubscribe(topics []string, id string) []byte {
	return []byte("{}")
}

func (conversationProtocol) BuildUnsubscribe(topics []string, id string) []byte {
	return []byte("{}")
}

var (
	_ ProtocolHandler = ttsProtocol{}
	_ ProtocolHandler = conversationProtocol{}
)
