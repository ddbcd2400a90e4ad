package generators

import (
	"github.com/HishamYahya/gollm/cmds"
	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/vars"
)

var defaultModelName = cmds.Var[string]("-model")

type DefaultModelName string

func (Module) DefaultModelName(
	loader configs.Loader,
	fallback FallbackModelName,
	logger logs.Logger,
) (ret DefaultModelName) {
	defer func() {
		logger.Info("default model", "name", ret)
	}()
	return vars.FirstNonZero(
		DefaultModelName(*defaultModelName),
		configs.First[DefaultModelName](loader, "model_name"),
		configs.First[DefaultModelName](loader, "model"),
		DefaultModelName(fallback),
	)
}

type FallbackModelName string

func (Module) FallbackModelName() FallbackModelName {
	return "gpt-4o-mini"
}

type GetDefaultGenerator func() (Generator, error)

func (Module) GetDefaultGenerator(
	name DefaultModelName,
	get GetGenerator,
) GetDefaultGenerator {
	return func() (Generator, error) {
		return get(string(name))
	}
}
