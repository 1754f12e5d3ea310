package ai

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// MasterDirective is the server-side system directive injected on every
// completion call. It is never sent to the client.
//
// TODO: replace the placeholder copy once the reviewed directive text lands.
const MasterDirective = `You are an empathetic, licensed-therapist-style AI assistant.
You respond with warmth, clarity, and psychological insight.`

// Compose builds the ordered message list for one turn: the fixed directive
// first, an optional supervisory whisper second, the user utterance last.
// Pure and side-effect free; the result length is 2 or 3.
func Compose(utterance, whisper string) []*schema.Message {
	messages := make([]*schema.Message, 0, 3)
	messages = append(messages, schema.SystemMessage(MasterDirective))

	if strings.TrimSpace(whisper) != "" {
		messages = append(messages, schema.SystemMessage(whisper))
	}

	return append(messages, schema.UserMessage(utterance))
}
