package checks

import (
	"github.com/HishamYahya/gollm/binds"
	"github.com/HishamYahya/gollm/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Binds binds.Module
	Logs  logs.Module
}
