package generators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/HishamYahya/gollm/cmds"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/nets"
	"github.com/HishamYahya/gollm/vars"
	"github.com/reusee/dscope"
)

var debugOpenAI = cmds.Switch("-debug-openai")

type OpenAI struct {
	args   GeneratorArgs
	apiKey string
	client nets.HTTPClient

	Logger dscope.Inject[logs.Logger]
}

var _ Generator = new(OpenAI)

func (o *OpenAI) Args() GeneratorArgs {
	return o.args
}

func (o *OpenAI) Complete(ctx context.Context, prompt string, params SamplingParams) (string, error) {

	temperature := params.Temperature
	if temperature == 0 && o.args.Temperature != nil {
		temperature = *o.args.Temperature
	}

	req := ChatCompletionRequest{
		Model: o.args.Model,
		Messages: []ChatCompletionMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: temperature,
		TopP:        params.TopP,
		N:           params.N,
		Stop:        params.Stop,
		MaxTokens: vars.FirstNonZero(
			vars.DerefOrZero(params.MaxTokens),
			vars.DerefOrZero(o.args.MaxGenerateTokens),
		),
		PresencePenalty:  params.PresencePenalty,
		FrequencyPenalty: params.FrequencyPenalty,
		Seed:             params.Seed,
	}

	if *debugOpenAI {
		jsonText, err := json.Marshal(req)
		if err != nil {
			return "", err
		}
		o.Logger().InfoContext(ctx, "open ai request",
			"body", jsonText,
		)
	}

	o.Logger().InfoContext(ctx, "generating",
		"model", o.args.Model,
	)

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	baseURL := o.args.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", OpenAIError{
				Err:   err,
				Model: o.args.Model,
			}
		}
		// transport errors are worth another try
		return "", errors.Join(
			OpenAIError{
				Err:   err,
				Model: o.args.Model,
			},
			ErrRetryable,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		var cause error
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error == nil {
			cause = fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, string(body))
		} else {
			errResp.Error.HTTPStatusCode = resp.StatusCode
			cause = errResp.Error
		}
		wrapped := OpenAIError{
			Err:   cause,
			Model: o.args.Model,
		}
		if resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode >= http.StatusInternalServerError {
			return "", errors.Join(wrapped, ErrRetryable)
		}
		return "", wrapped
	}

	var completion ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.Join(
			OpenAIError{
				Err:   errors.New("no choices"),
				Model: o.args.Model,
			},
			ErrRetryable,
		)
	}

	return completion.Choices[0].Message.Content, nil
}

type NewOpenAI func(args GeneratorArgs, apiKey string) *OpenAI

func (Module) NewOpenAI(
	inject dscope.InjectStruct,
	client nets.HTTPClient,
	apiKey OpenAIAPIKey,
) NewOpenAI {
	return func(args GeneratorArgs, key string) *OpenAI {
		ret := &OpenAI{
			args:   args,
			client: client,
			apiKey: vars.FirstNonZero(
				key,
				string(apiKey),
			),
		}
		inject(&ret)
		return ret
	}
}

type ChatCompletionRequest struct {
	Model            string                  `json:"model"`
	Messages         []ChatCompletionMessage `json:"messages"`
	Temperature      float32                 `json:"temperature"`
	TopP             float32                 `json:"top_p,omitempty"`
	N                int                     `json:"n,omitempty"`
	Stop             []string                `json:"stop,omitempty"`
	MaxTokens        int                     `json:"max_tokens,omitempty"`
	PresencePenalty  float32                 `json:"presence_penalty,omitempty"`
	FrequencyPenalty float32                 `json:"frequency_penalty,omitempty"`
	Seed             *int64                  `json:"seed,omitempty"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
}

type ChatCompletionChoice struct {
	Message      ChatCompletionMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code           any     `json:"code,omitempty"`
	Message        string  `json:"message,omitempty"`
	Param          *string `json:"param,omitempty"`
	Type           string  `json:"type,omitempty"`
	HTTPStatusCode int     `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}
