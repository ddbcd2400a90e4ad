package generators

import (
	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/nets"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Nets    nets.Module
	Logs    logs.Module
}
