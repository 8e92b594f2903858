package tmplconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/taitmpl/cmds"
	"github.com/reusee/taitmpl/configs"
	"github.com/reusee/taitmpl/logs"
)

//go:embed schema.cue
var schema string

var configFlags = cmds.Collect[string]("-config")

// ConfigPaths lists config files in precedence order.
type ConfigPaths []string

func (Module) ConfigPaths() (paths ConfigPaths) {
	// explicit
	paths = append(paths, *configFlags...)

	filenames := []string{
		"taitmpl.cue",
		".taitmpl.cue",
	}
	var dirs []string
	if dir, err := os.Getwd(); err == nil {
		dirs = append(dirs, dir)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, dir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}
	return
}

func (Module) ConfigsLoader(
	paths ConfigPaths,
	logger logs.Logger,
) configs.Loader {
	if len(paths) > 0 {
		logger.Info("config file",
			"paths", []string(paths),
		)
	}
	return configs.NewLoader(paths, schema)
}
