package main

import (
	"github.com/HishamYahya/gollm/debugs"
	"github.com/HishamYahya/gollm/synths"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Synths synths.Module
	Debugs debugs.Module
}
