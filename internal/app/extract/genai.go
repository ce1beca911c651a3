package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

const instructions = `You read web pages that advertise children's or family camps and report the camp's details.
Only report what the page states. Leave a field out when the page does not give it.
Dates: copy them as written, one calendar day each (the first and last day of the camp).
Price: a single number in the page's currency, without symbols. Use the lowest listed price.
Activities: short lowercase nouns such as "hiking" or "archery".`

// GenAIExtractor asks a Gemini model for a JSON PartialCamp.
type GenAIExtractor struct {
	client  *genai.Client
	model   string
	fetcher Fetcher
}

func NewGenAIExtractor(ctx context.Context, apiKey, model string, fetcher Fetcher) (*GenAIExtractor, error) {
	if apiKey == "" {
		return nil, errors.New("GenAI API key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAIExtractor{client: client, model: model, fetcher: fetcher}, nil
}

func partialSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":        str("camp name"),
			"description": str("one-paragraph summary"),
			"location":    str("town or venue"),
			"startDate":   str("first day"),
			"endDate":     str("last day"),
			"price":       {Type: genai.TypeNumber, Description: "price"},
			"imageUrl":    str("absolute URL of a representative image"),
			"activities":  {Type: genai.TypeArray, Items: str("activity")},
		},
		PropertyOrdering: []string{"name", "description", "location", "startDate", "endDate", "price", "imageUrl", "activities"},
	}
}

func (e *GenAIExtractor) Extract(ctx context.Context, url string) (PartialCamp, error) {
	page, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return PartialCamp{}, err
	}
	if strings.TrimSpace(page.Text) == "" {
		return PartialCamp{}, fmt.Errorf("extract %s: page has no text", url)
	}

	prompt := fmt.Sprintf("URL: %s\nTitle: %s\n\n%s", page.URL, page.Title, page.Text)
	resp, err := e.client.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    partialSchema(),
		})
	if err != nil {
		return PartialCamp{}, fmt.Errorf("GenAI generate failed: %w", err)
	}

	p, err := DecodePartial(resp.Text())
	if err != nil {
		return PartialCamp{}, err
	}
	if p.ImageURL == nil && page.Image != "" {
		img := page.Image
		p.ImageURL = &img
	}
	return p, nil
}

// DecodePartial parses a model response. Blank strings are treated as
// missing.
func DecodePartial(raw string) (PartialCamp, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	if strings.TrimSpace(raw) == "" {
		return PartialCamp{}, errors.New("empty extraction response")
	}

	var p PartialCamp
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return PartialCamp{}, fmt.Errorf("decode extraction: %w", err)
	}
	for _, f := range []**string{&p.Name, &p.Description, &p.Location, &p.StartDate, &p.EndDate, &p.ImageURL} {
		if *f != nil && strings.TrimSpace(**f) == "" {
			*f = nil
		}
	}
	return p, nil
}
