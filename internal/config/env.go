package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	dataDirEnv = "INTERNHUNT_DATA_DIR"
	configEnv  = "INTERNHUNT_CONFIG"
	listenEnv  = "INTERNHUNT_LISTEN"
)

// Env holds the process-level settings that can come from the environment
// (or a .env file in the working directory). Precedence for the data dir is
// -data flag, then INTERNHUNT_DATA_DIR, then app.data_dir, then ".".
type Env struct {
	DataDir    string
	ConfigPath string
	Listen     string
}

// LoadEnv reads .env when present; real environment variables win.
func LoadEnv() Env {
	_ = godotenv.Load()

	e := Env{
		DataDir:    os.Getenv(dataDirEnv),
		ConfigPath: os.Getenv(configEnv),
		Listen:     os.Getenv(listenEnv),
	}
	return e
}

// Dir is the data dir to bootstrap config into before the config is read.
func (e Env) Dir() string {
	if e.DataDir == "" {
		return "."
	}
	return e.DataDir
}

// Apply overrides config values that were set in the environment.
func (e Env) Apply(cfg *Config) {
	if e.Listen != "" {
		cfg.App.Listen = e.Listen
	}
	switch {
	case e.DataDir != "":
		cfg.App.DataDir = e.DataDir
	case cfg.App.DataDir == "":
		cfg.App.DataDir = "."
	}
}
