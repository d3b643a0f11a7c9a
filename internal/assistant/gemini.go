package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/healthtracker/internal/telemetry/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

const (
	DefaultGeminiApiUrl     = "https://generativelanguage.googleapis.com/"
	DefaultGeminiApiVersion = "v1beta"
	DefaultGeminiModel      = "gemini-2.5-flash"
	geminiTimeout           = 60 * time.Second
)

var ErrNoApiKey = errors.New("gemini api key not set")

// GeminiProvider streams replies from the Gemini API through the genai SDK.
type GeminiProvider struct {
	model  string
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context, apiUrl, model, apiKey string) (*GeminiProvider, error) {
	return NewGeminiProviderWithClient(ctx, apiUrl, model, apiKey, &http.Client{
		Timeout:   geminiTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewGeminiProviderWithClient builds the provider on the given http client. Without an
// api key the provider is created but every Stream call fails with ErrNoApiKey.
func NewGeminiProviderWithClient(
	ctx context.Context,
	apiUrl, model, apiKey string,
	httpClient *http.Client,
) (*GeminiProvider, error) {
	if apiUrl == "" {
		apiUrl = DefaultGeminiApiUrl
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	p := &GeminiProvider{model: model}
	if apiKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    strings.TrimSuffix(apiUrl, "/") + "/",
			APIVersion: DefaultGeminiApiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("new genai client: %w", err)
	}
	p.client = client
	return p, nil
}

func (p *GeminiProvider) Stream(ctx context.Context, req Request) (<-chan Fragment, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geminiProvider.stream")
	span.SetAttributes(attribute.String("model", p.model))
	span.SetAttributes(attribute.Bool("with_image", req.Image != nil))

	if p.client == nil {
		tracing.EndSpanWithErrCheck(span, ErrNoApiKey)
		return nil, ErrNoApiKey
	}

	contents, config := buildGeminiRequest(req)

	fragments := make(chan Fragment)
	go func() {
		var streamErr error
		defer func() {
			tracing.EndSpanWithErrCheck(span, streamErr)
		}()
		defer close(fragments)

		send := func(f Fragment) bool {
			select {
			case fragments <- f:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for resp, err := range p.client.Models.GenerateContentStream(ctx, p.model, contents, config) {
			if err != nil {
				streamErr = fmt.Errorf("gemini stream: %w", err)
				send(Fragment{Err: streamErr})
				return
			}
			text := responseText(resp)
			if text == "" {
				continue
			}
			if !send(Fragment{Text: text}) {
				return
			}
		}
	}()

	return fragments, nil
}

func buildGeminiRequest(req Request) ([]*genai.Content, *genai.GenerateContentConfig) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MimeType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{}
	if req.SystemContext != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemContext, genai.RoleUser)
	}
	return contents, config
}

// responseText joins the text parts of a streamed chunk, model thoughts excluded.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
