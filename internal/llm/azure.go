package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureProvider implements Provider against an Azure OpenAI deployment.
// Azure has no portable structured-output switch across API versions, so
// the schema is described in the prompt and enforced by validation.
type AzureProvider struct {
	client     *azopenai.Client
	deployment string
}

// NewAzureProvider creates a provider bound to one deployment.
func NewAzureProvider(cfg AzureConfig) (*AzureProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azure openai API key is required")
	}
	if cfg.Endpoint == "" || cfg.Deployment == "" {
		return nil, fmt.Errorf("azure openai endpoint and deployment are required")
	}

	client, err := azopenai.NewClientWithKeyCredential(cfg.Endpoint, azcore.NewKeyCredential(cfg.APIKey), nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure OpenAI client: %w", err)
	}

	return &AzureProvider{
		client:     client,
		deployment: cfg.Deployment,
	}, nil
}

func (p *AzureProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	opts := azopenai.ChatCompletionsOptions{
		DeploymentName: to.Ptr(p.deployment),
		Messages:       buildAzureMessages(req),
	}
	if req.MaxTokens > 0 {
		opts.MaxTokens = to.Ptr(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		opts.Temperature = to.Ptr(float32(req.Temperature))
	}

	resp, err := p.client.GetChatCompletions(ctx, opts, nil)
	if err != nil {
		return nil, mapAzureError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == nil {
		return nil, &ErrInvalidResponse{
			Err: fmt.Errorf("no completion in Azure OpenAI response"),
		}
	}

	content := json.RawMessage(*resp.Choices[0].Message.Content)
	stop := StopEnd
	if resp.Choices[0].FinishReason != nil && *resp.Choices[0].FinishReason == azopenai.CompletionsFinishReasonTokenLimitReached {
		stop = StopMaxTokens
	}
	if err := checkStructured(req, stop, content); err != nil {
		return nil, err
	}

	out := &Response{
		Content:    content,
		Model:      p.deployment,
		StopReason: stop,
	}
	if resp.Usage != nil {
		out.Usage = Usage{
			InputTokens:  int(derefInt32(resp.Usage.PromptTokens)),
			OutputTokens: int(derefInt32(resp.Usage.CompletionTokens)),
			TotalTokens:  int(derefInt32(resp.Usage.TotalTokens)),
		}
	}
	return out, nil
}

func (p *AzureProvider) ModelID() string {
	return p.deployment
}

// buildAzureMessages folds the system prompt and schema description into the
// first user turn. Every turn is sent as a user message.
func buildAzureMessages(req Request) []azopenai.ChatRequestMessageClassification {
	var first strings.Builder
	if req.System != "" {
		first.WriteString(req.System)
		first.WriteString("\n\n")
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&first, "Respond with ONLY a JSON object matching this schema (%s):\n%s\n\n", req.Schema.Name, def)
		}
	}

	var out []azopenai.ChatRequestMessageClassification
	for i, m := range req.Messages {
		text := m.Content
		if i == 0 {
			text = first.String() + text
		}
		if m.Role == RoleAssistant {
			text = "Previous assistant reply:\n" + text
		}
		out = append(out, &azopenai.ChatRequestUserMessage{
			Content: azopenai.NewChatRequestUserMessageContent(text),
		})
	}
	if len(out) == 0 && first.Len() > 0 {
		out = append(out, &azopenai.ChatRequestUserMessage{
			Content: azopenai.NewChatRequestUserMessageContent(first.String()),
		})
	}
	return out
}

func mapAzureError(err error) error {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		switch {
		case respErr.StatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case respErr.StatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
