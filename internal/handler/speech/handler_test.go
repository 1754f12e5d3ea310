package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mindwell-labs/mindwell/backend/internal/provider"
)

type fakeConversionService struct {
	transcribeText string
	transcribeErr  error
	synthAudio     []byte
	synthErr       error
	gotFilename    string
	gotText        string
	gotVoice       string
}

func (f *fakeConversionService) Transcribe(_ context.Context, _ []byte, filename string) (string, error) {
	f.gotFilename = filename
	return f.transcribeText, f.transcribeErr
}

func (f *fakeConversionService) Synthesize(_ context.Context, text, voice string) ([]byte, error) {
	f.gotText = text
	f.gotVoice = voice
	return f.synthAudio, f.synthErr
}

func (f *fakeConversionService) Format() string { return "mp3" }

func newRouter(svc ConversionService) chi.Router {
	r := chi.NewRouter()
	New(svc).RegisterRoutes(r)
	return r
}

func multipartAudio(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("audio", filename)
	if err != nil {
		t.Fatalf("CreateFormFile err: %v", err)
	}
	if _, err := part.Write([]byte("fake-audio")); err != nil {
		t.Fatalf("write audio err: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("writer.Close err: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestTranscribeReturnsText(t *testing.T) {
	fakeSvc := &fakeConversionService{transcribeText: "hello there"}
	r := newRouter(fakeSvc)

	body, contentType := multipartAudio(t, "sample.webm")
	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if fakeSvc.gotFilename != "sample.webm" {
		t.Fatalf("filename hint not forwarded, got %q", fakeSvc.gotFilename)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if resp["text"] != "hello there" {
		t.Fatalf("unexpected text: %q", resp["text"])
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	r := newRouter(&fakeConversionService{})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestTranscribeCredentialErrorNormalized(t *testing.T) {
	fakeSvc := &fakeConversionService{transcribeErr: errors.New("Incorrect API key provided: sk-xxx")}
	r := newRouter(fakeSvc)

	body, contentType := multipartAudio(t, "sample.wav")
	req := httptest.NewRequest(http.MethodPost, "/stt", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if resp["error"] != provider.CredentialsMessage {
		t.Fatalf("expected normalized credential message, got %q", resp["error"])
	}
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	fakeSvc := &fakeConversionService{synthAudio: []byte("mp3-bytes")}
	r := newRouter(fakeSvc)

	payload, _ := json.Marshal(map[string]string{"text": "read this aloud", "voice": "nova"})
	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("unexpected content type: %s", got)
	}
	if rr.Body.String() != "mp3-bytes" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
	if fakeSvc.gotText != "read this aloud" || fakeSvc.gotVoice != "nova" {
		t.Fatalf("request not forwarded, got text=%q voice=%q", fakeSvc.gotText, fakeSvc.gotVoice)
	}
}

func TestSynthesizeRequiresText(t *testing.T) {
	r := newRouter(&fakeConversionService{})

	payload, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSynthesizeProviderErrorPassedThrough(t *testing.T) {
	fakeSvc := &fakeConversionService{synthErr: errors.New("rate limit exceeded")}
	r := newRouter(fakeSvc)

	payload, _ := json.Marshal(map[string]string{"text": "hello"})
	req := httptest.NewRequest(http.MethodPost, "/tts", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal err: %v", err)
	}
	if resp["error"] != "rate limit exceeded" {
		t.Fatalf("provider message should pass through, got %q", resp["error"])
	}
}
