package nets

import (
	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
