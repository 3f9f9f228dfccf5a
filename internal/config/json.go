package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// config file. Durations accept "30s" style strings or nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		Name        string `json:"name"`
		Slug        string `json:"slug"`
		Environment string `json:"environment"`
		Debug       bool   `json:"debug"`
		Version     string `json:"version"`
	} `json:"app,omitempty"`

	Logging struct {
		Level  string `json:"level"`
		Format string `json:"format"`
	} `json:"logging,omitempty"`

	Development struct {
		Enabled       bool   `json:"enabled"`
		GitHubAPIURL  string `json:"github_api_url"`
		DumpResponses bool   `json:"dump_responses"`
	} `json:"development,omitempty"`

	HTTP struct {
		Timeout        Duration `json:"timeout"`
		UserAgent      string   `json:"user_agent"`
		MaxAttempts    int      `json:"max_attempts"`
		WaitMultiplier Duration `json:"wait_multiplier"`
		WaitMin        Duration `json:"wait_min"`
		WaitMax        Duration `json:"wait_max"`
		RateLimit      float64  `json:"rate_limit"`
		RateBurst      int      `json:"rate_burst"`
	} `json:"http,omitempty"`

	GitHub struct {
		APIURL string `json:"api_url"`
		Token  string `json:"token"`
	} `json:"github,omitempty"`

	Flow struct {
		RepoOwner string   `json:"repo_owner"`
		RepoName  string   `json:"repo_name"`
		Interval  Duration `json:"interval"`
		Targets   []string `json:"targets"`
	} `json:"flow,omitempty"`

	Secrets struct {
		TargetRepository string `json:"target_repository"`
	} `json:"secrets,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

// parseJSON reads the JSON config file. Secret values are never read from the
// file; they come from the environment only.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:        jsonCfg.App.Name,
			Slug:        jsonCfg.App.Slug,
			Environment: jsonCfg.App.Environment,
			Debug:       jsonCfg.App.Debug,
			Version:     jsonCfg.App.Version,
		},
		Logging: Logging{
			Level:  jsonCfg.Logging.Level,
			Format: jsonCfg.Logging.Format,
		},
		Development: Development{
			Enabled:       jsonCfg.Development.Enabled,
			GitHubAPIURL:  jsonCfg.Development.GitHubAPIURL,
			DumpResponses: jsonCfg.Development.DumpResponses,
		},
		HTTP: HTTP{
			Timeout:        time.Duration(jsonCfg.HTTP.Timeout),
			UserAgent:      jsonCfg.HTTP.UserAgent,
			MaxAttempts:    jsonCfg.HTTP.MaxAttempts,
			WaitMultiplier: time.Duration(jsonCfg.HTTP.WaitMultiplier),
			WaitMin:        time.Duration(jsonCfg.HTTP.WaitMin),
			WaitMax:        time.Duration(jsonCfg.HTTP.WaitMax),
			RateLimit:      jsonCfg.HTTP.RateLimit,
			RateBurst:      jsonCfg.HTTP.RateBurst,
		},
		GitHub: GitHub{
			APIURL: jsonCfg.GitHub.APIURL,
			Token:  jsonCfg.GitHub.Token,
		},
		Flow: Flow{
			RepoOwner:    jsonCfg.Flow.RepoOwner,
			RepoName:     jsonCfg.Flow.RepoName,
			Interval:     time.Duration(jsonCfg.Flow.Interval),
			ExtraTargets: jsonCfg.Flow.Targets,
		},
		Secrets: Secrets{
			TargetRepository: jsonCfg.Secrets.TargetRepository,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
