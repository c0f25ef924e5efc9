package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	AdminKey  string `yaml:"admin_key" json:"admin_key"`
	StaticDir string `yaml:"static_dir" json:"static_dir"`
}

type DBConfig struct {
	Type   string `yaml:"type" json:"type"`
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Name   string `yaml:"name" json:"name"`
	User   string `yaml:"user" json:"user"`
	Passwd string `yaml:"passwd" json:"passwd"`
	Debug  bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// BankConfig is the default transfer destination shown on receipts.
// The live values are kept in sys_config and may be changed at runtime;
// these act as the seed defaults on first boot.
type BankConfig struct {
	Account string `yaml:"account" json:"account"`
	Holder  string `yaml:"holder" json:"holder"`
}

type AppConfig struct {
	System   SysConfig  `yaml:"system" json:"system"`
	Web      WebConfig  `yaml:"web" json:"web"`
	Database DBConfig   `yaml:"database" json:"database"`
	Logger   LogConfig  `yaml:"logger" json:"logger"`
	Bank     BankConfig `yaml:"bank" json:"bank"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "stallpos",
		Location: "Asia/Seoul",
		Workdir:  "/var/stallpos",
		Debug:    true,
	},
	Web: WebConfig{
		Host:      "0.0.0.0",
		Port:      3000,
		AdminKey:  "stallpos-admin",
		StaticDir: "public",
	},
	Database: DBConfig{
		Type:   "sqlite",
		Host:   "127.0.0.1",
		Port:   5432,
		Name:   "stallpos",
		User:   "postgres",
		Passwd: "",
		Debug:  false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/stallpos/stallpos.log",
	},
	Bank: BankConfig{
		Account: "NH 301-00-123456",
		Holder:  "KWU Festival Stall",
	},
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok {
		f(v)
	}
}

// LoadConfig reads the YAML configuration file if one exists and applies
// environment overrides on top of it. A missing file is not an error; the
// defaults are used.
func LoadConfig(cfile string) *AppConfig {
	c := *DefaultAppConfig
	cfg := &c
	if cfile != "" {
		if _, err := os.Stat(cfile); err == nil {
			data, err := os.ReadFile(cfile)
			if err == nil {
				_ = yaml.Unmarshal(data, cfg)
			}
		}
	}

	setEnvValue("STALLPOS_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("STALLPOS_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("STALLPOS_ADMIN_KEY", func(v string) { cfg.Web.AdminKey = v })
	setEnvValue("STALLPOS_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("STALLPOS_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("STALLPOS_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("STALLPOS_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("STALLPOS_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("STALLPOS_BANK_ACCOUNT", func(v string) { cfg.Bank.Account = v })
	setEnvValue("STALLPOS_BANK_HOLDER", func(v string) { cfg.Bank.Holder = v })

	return cfg
}

// InitDirs creates the working directory layout used for logs and the
// embedded database file.
func (c *AppConfig) InitDirs() error {
	for _, dir := range []string{c.System.Workdir, filepath.Join(c.System.Workdir, "logs")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "create workdir")
		}
	}
	return nil
}
