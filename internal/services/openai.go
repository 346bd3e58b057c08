package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bunkerhq/bunker-engine/pkg/chat"
)

// OpenAIService implements NarrativeService on the OpenAI API: chat
// completions for text and the images endpoint for pictures.
type OpenAIService struct {
	client     *openai.Client
	modelName  string
	imageModel string
}

var _ NarrativeService = (*OpenAIService)(nil)

// NewOpenAIService creates an OpenAI narrative service.
func NewOpenAIService(apiKey, modelName, imageModel string) *OpenAIService {
	return &OpenAIService{
		client:     openai.NewClient(apiKey),
		modelName:  modelName,
		imageModel: imageModel,
	}
}

// GenerateText generates a chat completion.
func (o *OpenAIService) GenerateText(ctx context.Context, messages []chat.Message) (text string, err error) {
	defer func(start time.Time) { observeGeneration("openai", "text", start, err) }(time.Now())

	reqMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.modelName,
		Messages: reqMessages,
	})
	if err != nil {
		return "", &GenerationError{Provider: "openai", Op: "text", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Provider: "openai", Op: "text", Err: fmt.Errorf("empty choices in response")}
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage renders an image for the prompt and returns the decoded
// payload.
func (o *OpenAIService) GenerateImage(ctx context.Context, prompt string) (img []byte, err error) {
	defer func(start time.Time) { observeGeneration("openai", "image", start, err) }(time.Now())

	resp, err := o.client.CreateImage(ctx, openai.ImageRequest{
		Model:          o.imageModel,
		Prompt:         prompt,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
		N:              1,
	})
	if err != nil {
		return nil, &GenerationError{Provider: "openai", Op: "image", Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &GenerationError{Provider: "openai", Op: "image", Err: fmt.Errorf("no images in response")}
	}

	decoded, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, &GenerationError{Provider: "openai", Op: "image", Err: fmt.Errorf("failed to decode image payload: %w", err)}
	}
	return decoded, nil
}
