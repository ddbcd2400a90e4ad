package generators

import (
	"sync"

	"github.com/HishamYahya/gollm/configs"
)

type GeneratorSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
	GeneratorArgs
}

type GetGeneratorSpecs func() ([]GeneratorSpec, error)

func (Module) GetGeneratorSpecs(
	loader configs.Loader,
) GetGeneratorSpecs {
	return sync.OnceValues(func() (ret []GeneratorSpec, err error) {
		defer func() {
			if p := recover(); p != nil {
				if e, ok := p.(error); ok {
					err = e
				} else {
					panic(p)
				}
			}
		}()
		for set := range configs.All[[]GeneratorSpec](loader, "generators") {
			ret = append(ret, set...)
		}
		return
	})
}
