package generators

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/modes"
	"github.com/HishamYahya/gollm/vars"
	"github.com/reusee/dscope"
)

func testOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	loader := configs.NewLoader(nil, "")
	var generator *OpenAI
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		&loader,
	).Call(func(
		newOpenAI NewOpenAI,
	) {
		generator = newOpenAI(GeneratorArgs{
			BaseURL:           server.URL,
			Model:             "test-model",
			MaxGenerateTokens: vars.PtrTo(512),
		}, "test-key")
	})
	return generator
}

func TestOpenAIComplete(t *testing.T) {
	var gotReq ChatCompletionRequest
	generator := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("got %v", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal(err)
		}
		json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []ChatCompletionChoice{
				{
					Message: ChatCompletionMessage{
						Role:    "assistant",
						Content: "def swap(a, b):\n    return (b, a)\n",
					},
				},
			},
		})
	})

	completion, err := generator.Complete(t.Context(), "swap two numbers", SamplingParams{
		Seed: vars.PtrTo(int64(42)),
	})
	if err != nil {
		t.Fatal(err)
	}
	if completion == "" {
		t.Fatal("empty completion")
	}

	if gotReq.Model != "test-model" {
		t.Fatalf("got %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "swap two numbers" {
		t.Fatalf("got %+v", gotReq)
	}
	if gotReq.MaxTokens != 512 {
		t.Fatalf("got %+v", gotReq)
	}
	if gotReq.Seed == nil || *gotReq.Seed != 42 {
		t.Fatalf("got %+v", gotReq)
	}
}

func TestOpenAIRateLimited(t *testing.T) {
	generator := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: &APIError{
				Message: "rate limited",
				Type:    "rate_limit_error",
			},
		})
	})

	_, err := generator.Complete(t.Context(), "x", SamplingParams{})
	if !errors.Is(err, ErrRetryable) {
		t.Fatalf("got %v", err)
	}
	var openAIErr OpenAIError
	if !errors.As(err, &openAIErr) {
		t.Fatalf("got %v", err)
	}
}

func TestOpenAIBadRequest(t *testing.T) {
	generator := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: &APIError{
				Message: "model not found",
			},
		})
	})

	_, err := generator.Complete(t.Context(), "x", SamplingParams{})
	if err == nil {
		t.Fatal("expecting error")
	}
	if errors.Is(err, ErrRetryable) {
		t.Fatalf("got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("got %v", err)
	}
	if apiErr.HTTPStatusCode != http.StatusBadRequest {
		t.Fatalf("got %+v", apiErr)
	}
}

func TestOpenAINoChoices(t *testing.T) {
	generator := testOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatCompletionResponse{})
	})
	_, err := generator.Complete(t.Context(), "x", SamplingParams{})
	if !errors.Is(err, ErrRetryable) {
		t.Fatalf("got %v", err)
	}
}

func TestGetGenerator(t *testing.T) {
	loader := configs.NewLoader(nil, "")
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		&loader,
	).Call(func(
		get GetGenerator,
	) {
		generator, err := get("gpt-4o-mini")
		if err != nil {
			t.Fatal(err)
		}
		if generator.Args().Model != "gpt-4o-mini" {
			t.Fatalf("got %+v", generator.Args())
		}

		generator, err = get("ollama:llama3")
		if err != nil {
			t.Fatal(err)
		}
		if generator.Args().Model != "llama3" {
			t.Fatalf("got %+v", generator.Args())
		}

		if _, err := get("no-such-model"); err == nil {
			t.Fatal("expecting error")
		}
	})
}
