package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdemcore/internal/bot"
)

// Config is the full server configuration, read from an HCL file.
type Config struct {
	Server Settings      `hcl:"server,block"`
	Tables []TableConfig `hcl:"table,block"`
	Bots   []BotConfig   `hcl:"bot,block"`
}

// Settings carries server-level options.
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig defines one table.
type TableConfig struct {
	Name            string `hcl:"name,label"`
	Seats           int    `hcl:"seats,optional"`
	SmallBlind      int    `hcl:"small_blind"`
	BigBlind        int    `hcl:"big_blind"`
	BuyIn           int    `hcl:"buy_in,optional"`
	Hands           int    `hcl:"hands,optional"` // 0 plays until one stack remains
	ActionTimeoutMS int    `hcl:"action_timeout_ms,optional"`
	Seed            int64  `hcl:"seed,optional"` // 0 seeds from the clock
}

// BotConfig seats a house bot.
type BotConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy"`
	Tables   []string `hcl:"tables,optional"`
	Seed     int64    `hcl:"seed,optional"`
}

// DefaultConfig is what a server runs with when no file is given: one
// 6-seat table with 5/10 blinds and two house bots to keep it warm.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Tables: []TableConfig{
			{
				Name:            "main",
				Seats:           6,
				SmallBlind:      5,
				BigBlind:        10,
				BuyIn:           1000,
				ActionTimeoutMS: 30000,
			},
		},
		Bots: []BotConfig{
			{Name: "house-1", Strategy: "tight", Tables: []string{"main"}},
			{Name: "house-2", Strategy: "caller", Tables: []string{"main"}},
		},
	}
}

// LoadConfig reads and decodes an HCL config file. A missing file yields
// the defaults rather than an error so `serve` works out of the box.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}
	return decodeConfig(file.Body)
}

// ParseConfig decodes HCL config source directly, for tests and embedding.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}
	return decodeConfig(file.Body)
}

func decodeConfig(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("decoding config: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "localhost"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}

	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Seats == 0 {
			t.Seats = 6
		}
		if t.BuyIn == 0 {
			t.BuyIn = t.BigBlind * 100
		}
		if t.ActionTimeoutMS == 0 {
			t.ActionTimeoutMS = 30000
		}
	}

	for i := range c.Bots {
		b := &c.Bots[i]
		if b.Strategy == "" {
			b.Strategy = "random"
		}
		if len(b.Tables) == 0 {
			for _, t := range c.Tables {
				b.Tables = append(b.Tables, t.Name)
			}
		}
	}
}

// Validate rejects configurations the server cannot run.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}

	names := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if names[t.Name] {
			return fmt.Errorf("duplicate table %q", t.Name)
		}
		names[t.Name] = true
		if t.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", t.Name)
		}
		if t.BigBlind <= t.SmallBlind {
			return fmt.Errorf("table %s: big blind must exceed the small blind", t.Name)
		}
		if t.Seats < 2 || t.Seats > 10 {
			return fmt.Errorf("table %s: seats must be between 2 and 10", t.Name)
		}
		if t.BuyIn < t.BigBlind {
			return fmt.Errorf("table %s: buy-in below one big blind", t.Name)
		}
	}

	strategies := make(map[string]bool)
	for _, name := range bot.Names() {
		strategies[name] = true
	}
	for _, b := range c.Bots {
		if !strategies[b.Strategy] {
			return fmt.Errorf("bot %s: unknown strategy %q", b.Name, b.Strategy)
		}
		for _, table := range b.Tables {
			if !names[table] {
				return fmt.Errorf("bot %s: unknown table %q", b.Name, table)
			}
		}
	}
	return nil
}

// ListenAddress is the host:port the HTTP server binds.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// Table returns the named table config, or nil.
func (c *Config) Table(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// BotsFor lists the bots configured to sit at the named table.
func (c *Config) BotsFor(table string) []BotConfig {
	var bots []BotConfig
	for _, b := range c.Bots {
		for _, t := range b.Tables {
			if t == table {
				bots = append(bots, b)
				break
			}
		}
	}
	return bots
}
