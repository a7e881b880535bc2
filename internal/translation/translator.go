package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/laohu/zhkit/internal/vocab"
)

// Translator fills in English glosses for Mandarin vocabulary
type Translator struct {
	apiKey string
	client *openai.Client
}

// NewTranslator creates a new translator instance
func NewTranslator(apiKey string) *Translator {
	return &Translator{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// GlossWord returns a short English gloss for a Mandarin word. The pinyin
// reading disambiguates characters with several pronunciations and may be
// empty.
func (t *Translator) GlossWord(ctx context.Context, hanzi, pinyin string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not found")
	}

	prompt := fmt.Sprintf("Give a short English gloss for the Mandarin word '%s'. Respond with only the gloss, nothing else.", hanzi)
	if pinyin != "" {
		prompt = fmt.Sprintf("Give a short English gloss for the Mandarin word '%s' (pinyin: %s). Respond with only the gloss, nothing else.", hanzi, pinyin)
	}

	req := openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no gloss returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// FillGlosses walks a vocabulary file and fills the english column of rows
// that lack one. Returns the number of rows filled. Rows that already carry
// a gloss are left untouched.
func (t *Translator) FillGlosses(ctx context.Context, file *vocab.File, cache *Cache) (int, error) {
	if !file.HasColumn(vocab.ColEnglish) {
		return 0, fmt.Errorf("vocabulary file has no english column")
	}

	filled := 0
	for i := range file.Entries {
		entry := &file.Entries[i]
		if entry.English() != "" {
			continue
		}

		gloss, ok := cache.Get(entry.Hanzi)
		if !ok {
			var err error
			gloss, err = t.GlossWord(ctx, entry.Hanzi, entry.Pinyin())
			if err != nil {
				return filled, fmt.Errorf("glossing %s: %w", entry.Hanzi, err)
			}
			cache.Add(entry.Hanzi, gloss)
		}

		entry.Fields[vocab.ColEnglish] = gloss
		filled++
	}

	return filled, nil
}

// Cache stores glosses in memory for batch operations
type Cache struct {
	glosses map[string]string
}

// NewCache creates a new gloss cache
func NewCache() *Cache {
	return &Cache{
		glosses: make(map[string]string),
	}
}

// Add adds a gloss to the cache
func (c *Cache) Add(hanzi, gloss string) {
	c.glosses[hanzi] = gloss
}

// Get retrieves a gloss from the cache
func (c *Cache) Get(hanzi string) (string, bool) {
	gloss, ok := c.glosses[hanzi]
	return gloss, ok
}

// GetAll returns all cached glosses
func (c *Cache) GetAll() map[string]string {
	// Return a copy to prevent external modification
	result := make(map[string]string)
	for k, v := range c.glosses {
		result[k] = v
	}
	return result
}
