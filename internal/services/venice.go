package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

const (
	veniceBaseURL = "https://api.venice.ai/api/v1"

	DefaultVeniceTemperature = 0.8
	DefaultVeniceMaxTokens   = 1024
)

// VeniceService implements NarrativeService against Venice AI, covering
// both chat completions and image generation.
type VeniceService struct {
	apiKey     string
	modelName  string
	imageModel string
	baseURL    string
	httpClient *http.Client
}

// Ensure VeniceService implements NarrativeService.
var _ NarrativeService = (*VeniceService)(nil)

// VeniceChatRequest is the request body for Venice chat completions.
type VeniceChatRequest struct {
	Model       string           `json:"model"`
	Messages    []chat.Message   `json:"messages"`
	Temperature float64          `json:"temperature,omitempty"`
	MaxTokens   int              `json:"max_tokens,omitempty"`
	Stream      bool             `json:"stream"`
	Venice      VeniceParameters `json:"venice_parameters"`
}

type VeniceParameters struct {
	IncludeVeniceSystemPrompt bool   `json:"include_venice_system_prompt"`
	EnableWebSearch           string `json:"enable_web_search"`
}

type VeniceChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// VeniceImageRequest is the request body for Venice image generation.
type VeniceImageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
}

type VeniceImageResponse struct {
	Images []string `json:"images"` // base64-encoded payloads
	Error  *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewVeniceService creates a Venice AI narrative service.
func NewVeniceService(apiKey, modelName, imageModel string) *VeniceService {
	return &VeniceService{
		apiKey:     apiKey,
		modelName:  modelName,
		imageModel: imageModel,
		baseURL:    veniceBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (v *VeniceService) post(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+path, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// GenerateText generates a chat completion.
func (v *VeniceService) GenerateText(ctx context.Context, messages []chat.Message) (text string, err error) {
	defer func(start time.Time) { observeGeneration("venice", "text", start, err) }(time.Now())

	body, err := v.post(ctx, "/chat/completions", VeniceChatRequest{
		Model:       v.modelName,
		Messages:    messages,
		Temperature: DefaultVeniceTemperature,
		MaxTokens:   DefaultVeniceMaxTokens,
		Stream:      false,
		Venice: VeniceParameters{
			IncludeVeniceSystemPrompt: false,
			EnableWebSearch:           "off",
		},
	})
	if err != nil {
		return "", &GenerationError{Provider: "venice", Op: "text", Err: err}
	}

	var chatResp VeniceChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &GenerationError{Provider: "venice", Op: "text", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if chatResp.Error != nil {
		return "", &GenerationError{Provider: "venice", Op: "text", Err: fmt.Errorf("API error: %s", chatResp.Error.Message)}
	}
	if len(chatResp.Choices) == 0 {
		return "", &GenerationError{Provider: "venice", Op: "text", Err: fmt.Errorf("empty choices in response")}
	}
	return chatResp.Choices[0].Message.Content, nil
}

// GenerateImage renders an image for the prompt and returns the decoded
// payload.
func (v *VeniceService) GenerateImage(ctx context.Context, prompt string) (img []byte, err error) {
	defer func(start time.Time) { observeGeneration("venice", "image", start, err) }(time.Now())

	body, err := v.post(ctx, "/image/generate", VeniceImageRequest{
		Model:  v.imageModel,
		Prompt: prompt,
		Width:  1024,
		Height: 1024,
		Format: "png",
	})
	if err != nil {
		return nil, &GenerationError{Provider: "venice", Op: "image", Err: err}
	}

	var imgResp VeniceImageResponse
	if err := json.Unmarshal(body, &imgResp); err != nil {
		return nil, &GenerationError{Provider: "venice", Op: "image", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if imgResp.Error != nil {
		return nil, &GenerationError{Provider: "venice", Op: "image", Err: fmt.Errorf("API error: %s", imgResp.Error.Message)}
	}
	if len(imgResp.Images) == 0 {
		return nil, &GenerationError{Provider: "venice", Op: "image", Err: fmt.Errorf("no images in response")}
	}

	decoded, err := base64.StdEncoding.DecodeString(imgResp.Images[0])
	if err != nil {
		return nil, &GenerationError{Provider: "venice", Op: "image", Err: fmt.Errorf("failed to decode image payload: %w", err)}
	}
	return decoded, nil
}
