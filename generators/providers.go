package generators

import (
	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/vars"
)

type NewDeepseek func(args GeneratorArgs) *OpenAI

func (Module) NewDeepseek(
	apiKey DeepseekAPIKey,
	newOpenAI NewOpenAI,
) NewDeepseek {
	return func(args GeneratorArgs) *OpenAI {
		args.BaseURL = "https://api.deepseek.com/v1"
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}

type NewOpenRouter func(args GeneratorArgs) *OpenAI

func (Module) NewOpenRouter(
	newOpenAI NewOpenAI,
	apiKey OpenRouterAPIKey,
	loader configs.Loader,
) NewOpenRouter {
	return func(args GeneratorArgs) *OpenAI {
		if endpoint := configs.First[string](loader, "openrouter_endpoint"); endpoint != "" {
			args.BaseURL = endpoint
		} else {
			args.BaseURL = "https://openrouter.ai/api/v1"
		}
		return newOpenAI(
			args,
			vars.FirstNonZero(
				args.APIKey,
				string(apiKey),
			),
		)
	}
}
