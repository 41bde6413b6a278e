package config

import (
	"encoding/json"
	"os"

	"github.com/dsmirnov/stockfolio/internal/flagx"
	"github.com/dsmirnov/stockfolio/internal/timex"
)

// JsonConfig mirrors Config for JSON unmarshalling. The timeout uses
// timex.Duration so both "5s" strings and integer nanoseconds parse.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	DatabasePath   string         `json:"database_path"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays values from the JSON file named by the -c/-config flags.
// Without the flag nothing is loaded. A file that cannot be read or parsed
// panics: a requested but broken config is a deployment error.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	if c.ServerBaseURL != "" {
		config.ServerBaseURL = c.ServerBaseURL
	}
	if c.DatabasePath != "" {
		config.DatabasePath = c.DatabasePath
	}
	if c.RequestTimeout != 0 {
		config.RequestTimeout = c.RequestTimeout.Std()
	}
}
