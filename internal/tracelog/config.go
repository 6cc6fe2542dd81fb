package tracelog

import (
	"encoding/json"
	"fmt"
	"nodetrace/internal/global"
	"os"
	"strconv"
)

// Loads JSON config from file
func LoadConfig(path string) (cfg JSONConfig, err error) {
	configFile, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("failed to read config file: %w", err)
		return
	}

	err = json.Unmarshal(configFile, &cfg)
	if err != nil {
		err = fmt.Errorf("invalid config syntax in '%s': %w", path, err)
		return
	}
	return
}

// Parses JSON config into writer config
func (cfg JSONConfig) NewWriterConf() (config Config, err error) {
	config.FilePath = cfg.LogFile
	config.FullSync = cfg.FullSync
	config.LogLevel = cfg.LogLevel

	if cfg.FileMode != "" {
		var mode uint64
		mode, err = strconv.ParseUint(cfg.FileMode, 8, 32)
		if err != nil {
			err = fmt.Errorf("failed to parse file mode '%s': %w", cfg.FileMode, err)
			return
		}
		if mode > uint64(os.ModePerm) {
			err = fmt.Errorf("file mode '%s' has bits outside permission range", cfg.FileMode)
			return
		}
		config.FileMode = os.FileMode(mode)
	}

	config.setDefaults()
	return
}

// Sets defaults for any missing/invalid values
func (cfg *Config) setDefaults() {
	if cfg.FilePath == "" {
		cfg.FilePath = global.DefaultTraceFile
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = global.DefaultFileMode
	}
	if cfg.LogLevel < global.VerbosityNone {
		cfg.LogLevel = global.VerbosityNone
	}
	if cfg.LogLevel > global.VerbosityDebug {
		cfg.LogLevel = global.VerbosityDebug
	}
}
