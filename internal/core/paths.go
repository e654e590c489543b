package core

import (
	"os"
	"path/filepath"
	"strings"
)

type Paths struct {
	HomeDir         string
	ConfigFile      string
	ZshHistoryFile  string
	BashHistoryFile string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths == nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic(err)
		}

		defaultPaths = &Paths{
			HomeDir:         homeDir,
			ConfigFile:      filepath.Join(homeDir, ".config", "uncover", "config.yaml"),
			ZshHistoryFile:  filepath.Join(homeDir, ".zsh_history"),
			BashHistoryFile: filepath.Join(homeDir, ".bash_history"),
		}
	}
}

func HomeDir() string {
	ensureDefaultPaths()
	return defaultPaths.HomeDir
}

func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

func ZshHistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.ZshHistoryFile
}

func BashHistoryFile() string {
	ensureDefaultPaths()
	return defaultPaths.BashHistoryFile
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}
