package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/superhedge/listingctl/internal/domain/config"
)

// Output formats accepted by --output
var outputFormats = []string{"text", "json", "yaml"}

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}

	// .env files must be loaded before listing.toml is expanded
	loadEnvFiles(projectRoot)

	file, path, err := loadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		ConfigFile:     path,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		AssumeYes:      v.GetBool("yes"),
		Output:         strings.ToLower(v.GetString("output")),
		ConfirmTimeout: v.GetDuration("timeout"),
	}
	if !lo.Contains(outputFormats, cfg.Output) {
		return nil, fmt.Errorf("invalid output format %q (expected one of %s)", cfg.Output, strings.Join(outputFormats, ", "))
	}

	if cfg.Networks, err = buildNetworks(file.Networks); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ProjectFileName, err)
	}

	networkName := v.GetString("network")
	if networkName == "" {
		networkName = file.Network
	}
	if networkName == "" {
		networkName = DefaultNetwork
	}
	network, ok := cfg.Networks[networkName]
	if !ok {
		return nil, fmt.Errorf("failed to resolve network %s: not configured in %s", networkName, ProjectFileName)
	}
	cfg.Network = network

	if cfg.Backend, err = backendConfig(v, file.Backend); err != nil {
		return nil, err
	}
	cfg.Wallet = walletConfig(v, file.Wallet)

	return cfg, nil
}

func backendConfig(v *viper.Viper, section config.BackendSection) (config.BackendConfig, error) {
	backend := config.BackendConfig{
		URL:     strings.TrimRight(section.URL, "/"),
		Timeout: v.GetDuration("backend_timeout"),
	}
	if url := v.GetString("backend_url"); url != "" {
		backend.URL = strings.TrimRight(url, "/")
	}
	if section.Timeout != "" {
		timeout, err := time.ParseDuration(section.Timeout)
		if err != nil {
			return backend, fmt.Errorf("invalid backend timeout %q: %w", section.Timeout, err)
		}
		backend.Timeout = timeout
	}
	return backend, nil
}

func walletConfig(v *viper.Viper, section config.WalletSection) config.WalletConfig {
	wallet := config.WalletConfig{
		PrivateKey: section.PrivateKey,
		Address:    section.Address,
		Confirm:    true,
	}
	if section.Confirm != nil {
		wallet.Confirm = *section.Confirm
	}
	if key := v.GetString("private_key"); key != "" {
		wallet.PrivateKey = key
	}
	if addr := v.GetString("address"); addr != "" {
		wallet.Address = addr
	}
	return wallet
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("LISTINGCTL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("output", "text")
	v.SetDefault("timeout", "2m")
	v.SetDefault("backend_timeout", "30s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("yes", false)
	v.SetDefault("project_root", projectRoot)

	// flag names use dashes, config keys use underscores
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			panic(err)
		}
	})

	return v
}
