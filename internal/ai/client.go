// Package ai is the client for the external multimodal AI collaborator. It
// speaks the OpenAI wire format (chat completions and audio transcription),
// which any compatible server can provide. Responses are validated against
// the expected shape before they leave this package; the collaborator's
// output is never trusted structurally.
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL         = "https://api.openai.com"
	defaultChatModel       = "gpt-4o"
	defaultTranscribeModel = "whisper-1"
	defaultTimeout         = 60 * time.Second
)

type Client struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	chatModel       string
	transcribeModel string
}

type Options struct {
	BaseURL         string
	APIKey          string
	ChatModel       string
	TranscribeModel string
	Timeout         time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.ChatModel == "" {
		opts.ChatModel = defaultChatModel
	}
	if opts.TranscribeModel == "" {
		opts.TranscribeModel = defaultTranscribeModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	return &Client{
		httpClient:      &http.Client{Timeout: opts.Timeout},
		baseURL:         strings.TrimSuffix(opts.BaseURL, "/"),
		apiKey:          opts.APIKey,
		chatModel:       opts.ChatModel,
		transcribeModel: opts.TranscribeModel,
	}
}

// AnalyzeImage asks the vision model to describe the scene for navigation:
// useful objects, hazards, and any readable text.
func (c *Client) AnalyzeImage(ctx context.Context, image []byte) (*VisionAnalysis, error) {
	encoded := base64.StdEncoding.EncodeToString(image)
	user := []contentPart{
		{Type: "text", Text: "Describe this scene for a visually impaired person who is navigating it."},
		{Type: "image_url", ImageURL: &imageURL{URL: "data:image/jpeg;base64," + encoded}},
	}

	var analysis VisionAnalysis
	if err := c.completeJSON(ctx, visionPrompt, user, 1000, &analysis); err != nil {
		return nil, err
	}

	if analysis.Objects == nil {
		analysis.Objects = []SceneObject{}
	}
	if analysis.Obstacles == nil {
		analysis.Obstacles = []SceneObject{}
	}
	if analysis.TextContent == nil {
		analysis.TextContent = []SceneText{}
	}
	for _, object := range analysis.Objects {
		if object.Name == "" {
			return nil, fmt.Errorf("ai: vision response: object with empty name")
		}
	}
	for _, obstacle := range analysis.Obstacles {
		if obstacle.Name == "" {
			return nil, fmt.Errorf("ai: vision response: obstacle with empty name")
		}
	}
	for _, text := range analysis.TextContent {
		if text.Content == "" {
			return nil, fmt.Errorf("ai: vision response: text item with empty content")
		}
	}

	return &analysis, nil
}

// ClassifyAudio turns a transcript into classified navigation-relevant events.
func (c *Client) ClassifyAudio(ctx context.Context, transcript string) (*AudioAnalysis, error) {
	user := fmt.Sprintf("Classify this transcribed audio for a navigating pedestrian: %q", transcript)

	var analysis AudioAnalysis
	if err := c.completeJSON(ctx, audioPrompt, user, 500, &analysis); err != nil {
		return nil, err
	}

	if analysis.Events == nil {
		analysis.Events = []AudioCue{}
	}
	for _, event := range analysis.Events {
		if event.Type == "" {
			return nil, fmt.Errorf("ai: audio response: event with empty type")
		}
		switch event.Importance {
		case "low", "medium", "high":
		default:
			return nil, fmt.Errorf("ai: audio response: bad importance %q", event.Importance)
		}
	}

	return &analysis, nil
}

// GenerateInstruction produces the next spoken instruction from recent scene
// context and the user's stated goal.
func (c *Client) GenerateInstruction(ctx context.Context, nav NavigationContext) (*Instruction, error) {
	user := fmt.Sprintf(
		"Generate the next navigation instruction.\nDetected objects: %s\nRecognized text: %s\nUser query: %s\nCurrent location: %s\nDestination: %s",
		orNone(strings.Join(nav.DetectedObjects, ", ")),
		orNone(strings.Join(nav.RecognizedText, ", ")),
		orNone(nav.UserQuery),
		orNone(nav.CurrentLocation),
		orNone(nav.Destination),
	)

	var instruction Instruction
	if err := c.completeJSON(ctx, instructionPrompt, user, 300, &instruction); err != nil {
		return nil, err
	}

	if instruction.Instruction == "" {
		return nil, fmt.Errorf("ai: instruction response: empty instruction")
	}
	switch instruction.Priority {
	case "normal", "urgent", "warning":
	default:
		return nil, fmt.Errorf("ai: instruction response: bad priority %q", instruction.Priority)
	}

	return &instruction, nil
}

// Transcribe converts raw audio to text via the transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	file, err := form.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("ai: building transcription request: %w", err)
	}
	if _, err := file.Write(audio); err != nil {
		return "", fmt.Errorf("ai: building transcription request: %w", err)
	}
	if err := form.WriteField("model", c.transcribeModel); err != nil {
		return "", fmt.Errorf("ai: building transcription request: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("ai: building transcription request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("ai: building transcription request: %w", err)
	}
	request.Header.Set("Content-Type", form.FormDataContentType())
	c.authorize(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("ai: transcription: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: transcription: %s", readError(response))
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ai: parsing transcription response: %w", err)
	}

	return result.Text, nil
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// completeJSON runs one chat completion in JSON mode and unmarshals the
// model's reply into out. userContent is either a string or []contentPart.
func (c *Client) completeJSON(ctx context.Context, system string, userContent any, maxTokens int, out any) error {
	wireRequest := chatRequest{
		Model: c.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: userContent},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		MaxTokens:      maxTokens,
	}

	payload, err := json.Marshal(wireRequest)
	if err != nil {
		return fmt.Errorf("ai: building chat request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("ai: building chat request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	c.authorize(request)

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("ai: chat completion: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("ai: chat completion: %s", readError(response))
	}

	var wireResponse chatResponse
	if err := json.NewDecoder(response.Body).Decode(&wireResponse); err != nil {
		return fmt.Errorf("ai: parsing chat response: %w", err)
	}
	if len(wireResponse.Choices) == 0 {
		return fmt.Errorf("ai: chat response has no choices")
	}

	if err := json.Unmarshal([]byte(wireResponse.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("ai: parsing model output: %w", err)
	}

	return nil
}

func (c *Client) authorize(request *http.Request) {
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// readError summarizes a non-200 response for error messages.
func readError(response *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(response.Body, 512))
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Sprintf("status %d", response.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", response.StatusCode, trimmed)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
