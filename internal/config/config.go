// Package config persists the mint CLI's configuration as JSON files under
// a dot directory (default ~/.botmint): general settings, wallet metadata,
// and per-network gate deployments.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	defaultNetwork = "ethereum"

	configFile      = "config.json"
	walletsFile     = "wallets.json"
	deploymentsFile = "deployments.json"
)

// Config holds general CLI settings.
type Config struct {
	DefaultNetwork string            `json:"default_network"`
	DefaultWallet  string            `json:"default_wallet"`
	RPCs           map[string]string `json:"rpcs"` // network name → RPC URL

	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.botmint.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".botmint")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := &Config{
		DefaultNetwork: defaultNetwork,
		RPCs:           make(map[string]string),
		configDir:      dir,
	}

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.configDir = dir
	if cfg.RPCs == nil {
		cfg.RPCs = make(map[string]string)
	}

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the wallets.json path for the wallet store.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// RPC returns the RPC URL configured for a network.
func (c *Config) RPC(network string) (string, error) {
	url, ok := c.RPCs[network]
	if !ok || url == "" {
		return "", fmt.Errorf("no RPC configured for network %q — run `botmint init`", network)
	}
	return url, nil
}

// Deployment describes one deployed gate and its collaborators.
type Deployment struct {
	Network    string `json:"network"`
	Gate       string `json:"gate"`
	Vault      string `json:"vault"`
	Controller string `json:"controller"`
	PayToken   string `json:"pay_token"`
	Treasury   string `json:"treasury"`
}

// DeploymentsFile is the structure of deployments.json.
type DeploymentsFile struct {
	Deployments []Deployment `json:"deployments"`
}

// LoadDeployments reads deployments.json; a missing file is an empty list.
func (c *Config) LoadDeployments() (*DeploymentsFile, error) {
	return loadJSON[DeploymentsFile](filepath.Join(c.configDir, deploymentsFile))
}

// SaveDeployments writes deployments.json.
func (c *Config) SaveDeployments(df *DeploymentsFile) error {
	return saveJSON(filepath.Join(c.configDir, deploymentsFile), df)
}

// Deployment returns the deployment registered for a network.
func (c *Config) Deployment(network string) (*Deployment, error) {
	df, err := c.LoadDeployments()
	if err != nil {
		return nil, fmt.Errorf("loading deployments: %w", err)
	}
	for i := range df.Deployments {
		if df.Deployments[i].Network == network {
			return &df.Deployments[i], nil
		}
	}
	return nil, fmt.Errorf("no gate deployment registered for network %q — run `botmint init`", network)
}

// AddDeployment registers or replaces the deployment for its network.
func (c *Config) AddDeployment(d Deployment) error {
	df, err := c.LoadDeployments()
	if err != nil {
		return fmt.Errorf("loading deployments: %w", err)
	}
	replaced := false
	for i := range df.Deployments {
		if df.Deployments[i].Network == d.Network {
			df.Deployments[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		df.Deployments = append(df.Deployments, d)
	}
	return c.SaveDeployments(df)
}

// --- helpers ---

func loadJSON[T any](path string) (*T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &zero, nil
	}
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
