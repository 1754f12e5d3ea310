package chat_test

import (
	"encoding/json"
	"testing"

	"github.com/mindwell-labs/mindwell/backend/internal/model/chat"
)

func TestDecodeFrameUserMessage(t *testing.T) {
	frame := chat.DecodeFrame([]byte(`{"type":"user_message","text":"hello"}`))
	if frame.Type != chat.FrameUserMessage {
		t.Fatalf("unexpected type: %s", frame.Type)
	}
	if frame.Text != "hello" {
		t.Fatalf("unexpected text: %q", frame.Text)
	}
}

func TestDecodeFrameMalformed(t *testing.T) {
	frame := chat.DecodeFrame([]byte(`{"type":`))
	if frame.Type != chat.FrameUnknown {
		t.Fatalf("malformed frame should decode as unknown, got %s", frame.Type)
	}
}

func TestDecodeFrameUnrecognizedType(t *testing.T) {
	frame := chat.DecodeFrame([]byte(`{"type":"ping"}`))
	if frame.Type != chat.FrameUnknown {
		t.Fatalf("unrecognized type should decode as unknown, got %s", frame.Type)
	}
	if frame.Text != "" {
		t.Fatalf("unknown frames must not carry text, got %q", frame.Text)
	}
}

func TestDoneFrameOmitsText(t *testing.T) {
	data, err := json.Marshal(chat.DoneFrame())
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	if string(data) != `{"type":"done"}` {
		t.Fatalf("unexpected done frame encoding: %s", data)
	}
}

func TestErrorFrameEncoding(t *testing.T) {
	data, err := json.Marshal(chat.ErrorFrame("boom"))
	if err != nil {
		t.Fatalf("Marshal err: %v", err)
	}
	if string(data) != `{"type":"error","text":"boom"}` {
		t.Fatalf("unexpected error frame encoding: %s", data)
	}
}
