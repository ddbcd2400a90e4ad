package synths

import (
	"github.com/HishamYahya/gollm/binds"
	"github.com/HishamYahya/gollm/caches"
	"github.com/HishamYahya/gollm/checks"
	"github.com/HishamYahya/gollm/generators"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Binds      binds.Module
	Caches     caches.Module
	Checks     checks.Module
	Generators generators.Module
}
