package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"nodetrace/internal/global"
	"nodetrace/internal/tracelog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

func ConfigureMode(commandname string, args []string) {
	var configPath string
	var force bool
	commandFlags := flag.NewFlagSet(commandname, flag.ExitOnError)
	commandFlags.StringVar(&configPath, "c", global.DefaultConfigPath, "Path to write the template config")
	commandFlags.StringVar(&configPath, "config", global.DefaultConfigPath, "Path to write the template config")
	commandFlags.BoolVar(&force, "force", false, "Overwrite an existing config without asking")
	parseFlags(commandFlags, commandname, args)

	overwrite := force
	_, err := os.Stat(configPath)
	if err == nil && !force {
		// No terminal - no overwrite
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Printf("Existing configuration file present, not overwriting\n")
			return
		}

		fmt.Printf("Configuration file already exists at '%s'. Are you SURE you want to overwrite it? (yes/no): ", configPath)
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(input)) != "yes" {
			fmt.Printf("Not overwriting configuration file\n")
			return
		}
		overwrite = true
	}

	exitOnError(createTemplateConfig(configPath, overwrite))
	fmt.Printf("Wrote template configuration to %s\n", configPath)
}

// Writes a config holding every default value
func createTemplateConfig(path string, overwrite bool) (err error) {
	template := tracelog.JSONConfig{
		LogFile:  filepath.Join("/var/lib/nodetrace", global.DefaultTraceFile),
		FileMode: fmt.Sprintf("%04o", global.DefaultFileMode),
		FullSync: false,
		LogLevel: global.VerbosityStandard,
	}

	content, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		err = fmt.Errorf("failed to marshal template config: %w", err)
		return
	}
	content = append(content, '\n')

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	err = os.MkdirAll(filepath.Dir(path), global.DefaultDirMode)
	if err != nil {
		err = fmt.Errorf("failed to create configuration directory: %w", err)
		return
	}

	file, err := os.OpenFile(path, flags, 0640)
	if errors.Is(err, fs.ErrExist) {
		err = fmt.Errorf("configuration file %s already exists", path)
		return
	} else if err != nil {
		err = fmt.Errorf("failed to open configuration file: %w", err)
		return
	}
	defer file.Close()

	_, err = file.Write(content)
	if err != nil {
		err = fmt.Errorf("failed to write configuration file: %w", err)
		return
	}
	return
}
