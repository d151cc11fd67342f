package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"luxetravel/logger"
	"luxetravel/travel"
)

var ErrAINotConfigured = errors.New("gemini API key not configured")

// SearchResult is the grounded answer to a search query.
type SearchResult struct {
	Text    string
	Sources []travel.GroundingSource
}

// ChatTurn is one message of a concierge conversation. Role is "user" or
// "model".
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// Concierge is the generative-AI collaborator. Every call may fail; callers
// replace failures with a fallback message and never retry.
type Concierge interface {
	Search(ctx context.Context, query string) (SearchResult, error)
	GenerateItinerary(ctx context.Context, prompt string) (string, error)
	Chat(ctx context.Context, history []ChatTurn, message string) (string, error)
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	// Synthesize returns 16-bit mono PCM at SpeechSampleRate, or nil when the
	// model sent no audio.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

const SpeechSampleRate = 24000

type GeminiOptions struct {
	APIKey         string
	SearchModel    string
	PlannerModel   string
	ChatModel      string
	TTSModel       string
	Voice          string
	ThinkingBudget int
	Timeout        time.Duration
}

// ─── Gemini Client ────────────────────────────────────────────────────────────

type GeminiClient struct {
	client *genai.Client
	opts   GeminiOptions
}

// NewGeminiClient builds the collaborator. Without an API key the client
// is still usable but every call returns ErrAINotConfigured.
func NewGeminiClient(ctx context.Context, opts GeminiOptions) (*GeminiClient, error) {
	c := &GeminiClient{opts: opts}
	if opts.APIKey == "" {
		logger.Log.Warn("[ai] GEMINI_API_KEY not set, searches will return the fallback message")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	c.client = client

	logger.Log.Info("[ai] gemini initialized",
		zap.String("search_model", opts.SearchModel),
		zap.String("planner_model", opts.PlannerModel))
	return c, nil
}

func (c *GeminiClient) Configured() bool {
	return c.client != nil
}

func (c *GeminiClient) generate(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if c.client == nil {
		return nil, ErrAINotConfigured
	}
	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini %s: %w", model, err)
	}
	logger.Log.Debug("[ai] generate done", zap.String("model", model), zap.Duration("took", time.Since(start)))
	return resp, nil
}

// Search asks the search model with Google Search grounding enabled.
func (c *GeminiClient) Search(ctx context.Context, query string) (SearchResult, error) {
	resp, err := c.generate(ctx, c.opts.SearchModel, genai.Text(query), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{Text: resp.Text(), Sources: groundingSources(resp)}, nil
}

func (c *GeminiClient) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if c.opts.ThinkingBudget > 0 {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(c.opts.ThinkingBudget))}
	}
	resp, err := c.generate(ctx, c.opts.PlannerModel, genai.Text(ItineraryPrompt(prompt)), cfg)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *GeminiClient) Chat(ctx context.Context, history []ChatTurn, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Text, genai.Role(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	resp, err := c.generate(ctx, c.opts.ChatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(ChatSystemInstruction, genai.RoleUser),
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *GeminiClient) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(audio, mimeType),
			genai.NewPartFromText(TranscribeInstruction),
		}, genai.RoleUser),
	}
	resp, err := c.generate(ctx, c.opts.SearchModel, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *GeminiClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.generate(ctx, c.opts.TTSModel, genai.Text(text), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.opts.Voice},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return inlineAudio(resp), nil
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func groundingSources(resp *genai.GenerateContentResponse) []travel.GroundingSource {
	sources := []travel.GroundingSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		sources = append(sources, travel.GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}

func inlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
