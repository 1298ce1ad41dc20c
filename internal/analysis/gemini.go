package analysis

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"infinium/internal/model"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const maxImageBytes = 20 << 20

// GeminiClient analyses images and generates text with Google's Gemini API.
type GeminiClient struct {
	client      *genai.Client
	httpClient  *http.Client
	visionModel string
	textModel   string
	logger      zerolog.Logger
}

// NewGeminiClient creates a Gemini-backed Analyzer and Generator.
func NewGeminiClient(ctx context.Context, apiKey, visionModel, textModel string, timeout time.Duration, logger zerolog.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		httpClient:  newImageHTTPClient(timeout),
		visionModel: visionModel,
		textModel:   textModel,
		logger:      logger.With().Str("component", "gemini").Logger(),
	}, nil
}

// AnalyzeImage sends the image inline with the analysis prompt and decodes
// the JSON answer.
func (g *GeminiClient) AnalyzeImage(ctx context.Context, img Image) (*model.FoodAnalysis, error) {
	if len(img.Data) == 0 && img.URL != "" {
		if err := checkImageURL(img.URL); err != nil {
			g.logger.Warn().Str("image_url", img.URL).Msg("rejected image URL")
			return nil, err
		}
	}

	data, mimeType, err := loadImage(ctx, g.httpClient, img)
	if err != nil {
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromBytes(data, mimeType),
		genai.NewPartFromText(foodImagePrompt),
	}

	resp, err := g.client.Models.GenerateContent(ctx,
		g.visionModel,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return nil, fmt.Errorf("food analysis failed: %w", err)
	}

	var out model.FoodAnalysis
	if err := decode(resp.Text(), &out); err != nil {
		return nil, fmt.Errorf("food analysis failed: %w", err)
	}

	if out.Timestamp == "" {
		out.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	g.logger.Debug().
		Int("food_items", len(out.FoodItems)).
		Float64("total_calories", out.TotalCalories).
		Msg("image analysed")

	return &out, nil
}

// Generate completes prompt with the text model.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.textModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("Gemini generate failed: %w", err)
	}

	return resp.Text(), nil
}

// loadImage returns the image bytes, downloading them when only a URL is set.
func loadImage(ctx context.Context, client *http.Client, img Image) ([]byte, string, error) {
	data := img.Data
	if len(data) == 0 {
		if img.URL == "" {
			return nil, "", model.ErrImageRequired
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, img.URL, nil)
		if err != nil {
			return nil, "", fmt.Errorf("invalid image URL: %w", err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch image: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
		}

		data, err = io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
		if err != nil {
			return nil, "", fmt.Errorf("failed to read image: %w", err)
		}
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return data, mimeType, nil
}
