package generators

import (
	"context"
	"fmt"
	"strings"
)

type Generator interface {
	Args() GeneratorArgs
	Complete(ctx context.Context, prompt string, params SamplingParams) (string, error)
}

type GetGenerator func(name string) (Generator, error)

func (Module) GetGenerator(
	newOpenAI NewOpenAI,
	newDeepseek NewDeepseek,
	newOpenRouter NewOpenRouter,
	getSpecs GetGeneratorSpecs,
) GetGenerator {
	return func(name string) (Generator, error) {

		// user-defined first
		specs, err := getSpecs()
		if err != nil {
			return nil, err
		}
		for _, spec := range specs {
			if spec.Name != name {
				continue
			}
			switch strings.ToLower(spec.Type) {
			case "openai", "open-ai", "open_ai":
				return newOpenAI(spec.GeneratorArgs, spec.GeneratorArgs.APIKey), nil
			case "deepseek":
				return newDeepseek(spec.GeneratorArgs), nil
			case "open-router", "open_router", "openrouter":
				return newOpenRouter(spec.GeneratorArgs), nil
			case "ollama":
				spec.GeneratorArgs.BaseURL = "http://127.0.0.1:11434/v1"
				return newOpenAI(spec.GeneratorArgs, ""), nil
			default:
				return nil, fmt.Errorf("unknown generator type: %q", spec.Type)
			}
		}

		// ollama
		provider, modelName, ok := strings.Cut(name, ":")
		if ok && provider == "ollama" {
			return newOpenAI(GeneratorArgs{
				BaseURL: "http://127.0.0.1:11434/v1",
				Model:   modelName,
			}, ""), nil
		}

		// openai models by name
		if strings.HasPrefix(name, "gpt-") || strings.HasPrefix(name, "o1") || strings.HasPrefix(name, "o3") {
			return newOpenAI(GeneratorArgs{
				Model:         name,
				ContextTokens: 128 * K,
			}, ""), nil
		}

		return nil, fmt.Errorf("invalid model: %s", name)
	}
}
