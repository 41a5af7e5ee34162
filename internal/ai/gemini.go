package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wanderlust/internal/modules/itinerary"
)

// GeminiProvider implements TextGenerator using Google's Gemini models with a
// response schema, so the reply shape is enforced server side.
type GeminiProvider struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiProvider initializes a new Gemini client.
func NewGeminiProvider(ctx context.Context, apiKey, modelName string, temperature float32) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, modelName: modelName, temperature: temperature}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) GenerateJSON(ctx context.Context, prompt Prompt) (string, error) {
	// A model handle is a cheap value; building one per call keeps the system
	// instruction scoped to this request.
	model := p.client.GenerativeModel(p.modelName)
	model.SetTemperature(p.temperature)
	model.ResponseMIMEType = "application/json"
	if prompt.Schema != nil {
		model.ResponseSchema = toGenaiSchema(prompt.Schema)
	}
	if prompt.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt.System)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt.User))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(responseText.String()) == "" {
		return "", ErrEmptyResponse
	}
	return responseText.String(), nil
}

// toGenaiSchema translates the neutral schema tree into Gemini's schema type.
func toGenaiSchema(n *itinerary.SchemaNode) *genai.Schema {
	if n == nil {
		return nil
	}
	s := &genai.Schema{
		Type:     genaiType(n.Type),
		Required: n.Required,
		Items:    toGenaiSchema(n.Items),
	}
	if len(n.Enum) > 0 {
		s.Format = "enum"
		s.Enum = n.Enum
	}
	if len(n.Properties) > 0 {
		s.Properties = make(map[string]*genai.Schema, len(n.Properties))
		for name, child := range n.Properties {
			s.Properties[name] = toGenaiSchema(child)
		}
	}
	return s
}

func genaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
