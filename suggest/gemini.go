package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Gemini asks a Gemini model for the category. The API key is read from the
// environment (GEMINI_API_KEY or GOOGLE_API_KEY).
type Gemini struct {
	Model string
	// generate sends a prompt and returns the text of the answer.
	generate func(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (string, error)
}

// NewGemini creates the Gemini client.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{
		Model: model,
		generate: func(ctx context.Context, model, prompt string, config *genai.GenerateContentConfig) (string, error) {
			contents := []*genai.Content{
				{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
			}
			resp, err := client.Models.GenerateContent(ctx, model, contents, config)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func prompt(description string, categories []string) string {
	var b strings.Builder
	b.WriteString("You sort personal finance transactions into categories.\n")
	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	fmt.Fprintf(&b, "\nTransaction description: %q\n\n", description)
	b.WriteString("Pick exactly one category from the list, rate your confidence between 0 and 1 ")
	b.WriteString("and give a short reason.\n")
	return b.String()
}

// answer is the structured reply of the model.
type answer struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
	Reason     string   `json:"reason"`
}

// config asks for an answer matching the answer type, the category being
// one of categories.
func config(categories []string) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category": {
					Type:        genai.TypeString,
					Description: "The category of the transaction.",
					Enum:        categories,
				},
				"confidence": {
					Type:        genai.TypeNumber,
					Description: "How sure the category is right, from 0 to 1.",
				},
				"reason": {
					Type:        genai.TypeString,
					Description: "Why this category fits, in a few words.",
				},
			},
			Required: []string{"category", "confidence"},
		},
	}
}

// pick finds the category named in a model answer.
func pick(answer string, categories []string) (string, bool) {
	a := strings.Trim(strings.TrimSpace(answer), "`\"'*. \n")
	for _, c := range categories {
		if strings.EqualFold(a, c) {
			return c, true
		}
	}
	// the model may still wrap the name in a sentence.
	for _, c := range categories {
		if strings.Contains(strings.ToLower(a), strings.ToLower(c)) {
			return c, true
		}
	}
	return "", false
}

func (g *Gemini) Suggest(ctx context.Context, description string, categories []string) (Suggestion, error) {
	if strings.TrimSpace(description) == "" || len(categories) == 0 {
		return Suggestion{}, ErrNoSuggestion
	}
	text, err := g.generate(ctx, g.Model, prompt(description, categories), config(categories))
	if err != nil {
		return Suggestion{}, fmt.Errorf("generate content: %w", err)
	}
	var a answer
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return Suggestion{}, fmt.Errorf("%w: model answered %q: %w", ErrNoSuggestion, text, err)
	}
	cat, ok := pick(a.Category, categories)
	if !ok {
		return Suggestion{}, fmt.Errorf("%w: model answered %q", ErrNoSuggestion, a.Category)
	}
	s := Suggestion{Category: cat, Confidence: 0.5, Reason: "suggested by " + g.Model}
	if a.Confidence != nil {
		s.Confidence = min(max(*a.Confidence, 0), 1)
	}
	if r := strings.TrimSpace(a.Reason); r != "" {
		s.Reason = r + " (" + g.Model + ")"
	}
	return s, nil
}
