package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/superhedge/listingctl/internal/domain/config"
)

// ProjectFileName is the project configuration file looked up from the
// working directory upwards
const ProjectFileName = "listing.toml"

// FindProjectRoot walks up from the current directory to the first
// directory holding listing.toml. Without one the working directory is used.
func FindProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd, nil
		}
		dir = parent
	}
}

// loadEnvFiles loads .env and .env.local from the project root. Variables
// already present in the environment are not overridden.
func loadEnvFiles(projectRoot string) {
	for _, name := range []string{".env", ".env.local"} {
		envFile := filepath.Join(projectRoot, name)
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			// Log warning but don't fail
			fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
		}
	}
}

// loadProjectFile decodes listing.toml. A missing file yields an empty
// config and an empty path.
func loadProjectFile(projectRoot string) (*config.ProjectFileConfig, string, error) {
	path := filepath.Join(projectRoot, ProjectFileName)

	var file config.ProjectFileConfig
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &config.ProjectFileConfig{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	file.Network = os.ExpandEnv(file.Network)
	file.Backend.URL = os.ExpandEnv(file.Backend.URL)
	file.Backend.Timeout = os.ExpandEnv(file.Backend.Timeout)
	file.Wallet.PrivateKey = os.ExpandEnv(file.Wallet.PrivateKey)
	file.Wallet.Address = os.ExpandEnv(file.Wallet.Address)
	for name, section := range file.Networks {
		section.RPCURL = os.ExpandEnv(section.RPCURL)
		section.ExplorerURL = os.ExpandEnv(section.ExplorerURL)
		section.Marketplace = os.ExpandEnv(section.Marketplace)
		section.NFT = os.ExpandEnv(section.NFT)
		section.Currency = os.ExpandEnv(section.Currency)
		file.Networks[name] = section
	}

	return &file, path, nil
}
