package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

func newTestVenice(t *testing.T, handler http.HandlerFunc) *VeniceService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewVeniceService("test-key", "test-model", "test-image-model")
	svc.baseURL = server.URL
	return svc
}

func TestVeniceService_GenerateText(t *testing.T) {
	svc := newTestVenice(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("auth header = %q", got)
		}

		var req VeniceChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" || len(req.Messages) != 2 {
			t.Errorf("request = %+v", req)
		}

		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"A firestorm sweeps the plains."},"finish_reason":"stop"}]}`))
	})

	text, err := svc.GenerateText(context.Background(), chat.Conversation("system", "user"))
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "A firestorm sweeps the plains." {
		t.Errorf("text = %q", text)
	}
}

func TestVeniceService_GenerateTextErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "upstream exploded", http.StatusBadGateway)
			},
		},
		{
			name: "api error payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error": {"message": "model overloaded"}}`))
			},
		},
		{
			name: "empty choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestVenice(t, tt.handler)
			_, err := svc.GenerateText(context.Background(), chat.Conversation("s", "u"))
			if err == nil {
				t.Fatal("expected error")
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("error type = %T, want *GenerationError", err)
			}
			if genErr.Provider != "venice" || genErr.Op != "text" {
				t.Errorf("error labels = %s/%s", genErr.Provider, genErr.Op)
			}
		})
	}
}

func TestVeniceService_GenerateImage(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	svc := newTestVenice(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req VeniceImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-image-model" || req.Prompt != "ashen wasteland" {
			t.Errorf("request = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(VeniceImageResponse{
			Images: []string{base64.StdEncoding.EncodeToString(payload)},
		})
	})

	img, err := svc.GenerateImage(context.Background(), "ashen wasteland")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(img) != string(payload) {
		t.Errorf("image payload mismatch")
	}
}

func TestVeniceService_GenerateImageNoImages(t *testing.T) {
	svc := newTestVenice(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"images": []}`))
	})

	if _, err := svc.GenerateImage(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty image list")
	}
}
