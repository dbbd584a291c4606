package translate

import (
	"context"
	"fmt"
	"strings"

	google_translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
)

// Client translates a single text into the configured target language.
type Client interface {
	Translate(ctx context.Context, text string) (string, error)
}

// GoogleClient translates via the Google Cloud Translation API. Credentials
// come from the application-default mechanism of the underlying SDK.
type GoogleClient struct {
	target language.Tag
}

func NewGoogleClient(targetLanguage string) (*GoogleClient, error) {
	lang, err := language.Parse(targetLanguage)
	if err != nil {
		return nil, fmt.Errorf("language.Parse: %w", err)
	}
	return &GoogleClient{target: lang}, nil
}

func (c *GoogleClient) Translate(ctx context.Context, text string) (string, error) {
	client, err := google_translate.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	fmt.Printf("translate: %s...\n", text)
	resp, err := client.Translate(ctx, []string{text}, c.target, nil)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	if len(resp) == 0 {
		return "", fmt.Errorf("translate returned empty response to text: %s", text)
	}
	trans := strings.ReplaceAll(resp[0].Text, "&#39;", "'")
	return trans, nil
}
