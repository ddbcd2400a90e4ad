package caches

import (
	"os"
	"path/filepath"

	"github.com/HishamYahya/gollm/cmds"
	"github.com/HishamYahya/gollm/configs"
	"github.com/HishamYahya/gollm/logs"
	"github.com/HishamYahya/gollm/vars"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

type Dir string

var cacheDirFlag = cmds.Var[string]("-cache-dir")

func (Module) Dir(
	loader configs.Loader,
) Dir {
	if dir := vars.FirstNonZero(
		*cacheDirFlag,
		configs.First[string](loader, "cache_dir"),
	); dir != "" {
		return Dir(dir)
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		userCacheDir = os.TempDir()
	}
	return Dir(filepath.Join(userCacheDir, "gollm"))
}

func (Module) Store(
	dir Dir,
	logger logs.Logger,
) *Store {
	store, err := NewStore(string(dir), logger)
	if err != nil {
		panic(err)
	}
	return store
}
