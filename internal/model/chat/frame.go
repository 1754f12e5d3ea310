package chat

import "encoding/json"

// FrameType enumerates the closed set of frames exchanged over the relay
// websocket. Anything outside this set decodes as FrameUnknown.
type FrameType string

const (
	FrameUserMessage FrameType = "user_message"
	FrameChunk       FrameType = "chunk"
	FrameDone        FrameType = "done"
	FrameError       FrameType = "error"
	FrameUnknown     FrameType = "unknown"
)

// Frame is the unit exchanged over the streaming connection. Client to
// server: user_message. Server to client: chunk zero or more times, then
// exactly one done or error per accepted turn.
type Frame struct {
	Type FrameType `json:"type"`
	Text string    `json:"text,omitempty"`
}

// DecodeFrame parses an inbound wire frame. Malformed JSON and unrecognized
// type tags both map to FrameUnknown so the relay handles them on one path.
func DecodeFrame(data []byte) Frame {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{Type: FrameUnknown}
	}

	switch f.Type {
	case FrameUserMessage, FrameChunk, FrameDone, FrameError:
		return f
	default:
		return Frame{Type: FrameUnknown}
	}
}

// ChunkFrame wraps one incremental reply fragment.
func ChunkFrame(text string) Frame {
	return Frame{Type: FrameChunk, Text: text}
}

// DoneFrame is the terminal success frame for a turn.
func DoneFrame() Frame {
	return Frame{Type: FrameDone}
}

// ErrorFrame is the terminal failure frame for a turn. The text must already
// be normalized; it never carries conversation content.
func ErrorFrame(message string) Frame {
	return Frame{Type: FrameError, Text: message}
}
