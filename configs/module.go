package configs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/HishamYahya/gollm/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

//go:embed schema.cue
var schema string

func (Module) Loader(
	logger logs.Logger,
) Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	filenames := []string{
		"gollm.cue",
		".gollm.cue",
	}

	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		for _, filename := range filenames {
			path := filepath.Join(workingDir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		for _, filename := range filenames {
			path := filepath.Join(configDir, "gollm", filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return NewLoader(paths, schema)
}
