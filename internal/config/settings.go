package config

import (
	_ "embed"
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

type Config struct {
	Import struct {
		// MaxRows caps how many candidate rows a single preview or
		// commit may carry.
		MaxRows uint32 `json:"max_rows"`
		// FetchTimeout is the URL import timeout in milliseconds.
		FetchTimeout  uint32 `json:"fetch_timeout"`
		MaxFetchBytes int64  `json:"max_fetch_bytes"`
		Socks5Proxy   string `json:"socks5_proxy"`
	} `json:"import"`

	Publish struct {
		Dir     string `json:"dir"`
		BaseURL string `json:"base_url"`
	} `json:"publish"`

	Maintenance struct {
		DraftCleanupMinutes uint32 `json:"draft_cleanup_minutes"`
		StaleDraftHours     uint32 `json:"stale_draft_hours"`
	} `json:"maintenance"`

	GeoLite struct {
		CountryDBPath string `json:"country_db_path"`
	} `json:"geolite"`
}

const settingsFilePath = "data/settings.json"

var (
	//go:embed default_settings.json
	defaultConfig []byte

	configValue atomic.Value
	configMu    sync.Mutex

	InProductionMode bool
)

func init() {
	var cfg Config
	// The embedded defaults are the baseline even before ReadSettings runs.
	if err := json.Unmarshal(defaultConfig, &cfg); err != nil {
		panic("config: invalid embedded default settings: " + err.Error())
	}
	configValue.Store(cfg)
}

func ReadSettings() {
	data, err := os.ReadFile(settingsFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Settings file not found, creating with default configuration")

			err = os.MkdirAll("data", os.ModePerm)
			if err != nil {
				log.Error("Error creating directory for settings file:", err)
				return
			}

			err = os.WriteFile(settingsFilePath, defaultConfig, os.ModePerm)
			if err != nil {
				log.Error("Error writing default settings file:", err)
				return
			}

			data = defaultConfig
		} else {
			log.Error("Error reading settings file:", err)
			return
		}
	}

	var newConfig Config
	err = json.Unmarshal(data, &newConfig)
	if err != nil {
		log.Error("Error unmarshalling settings file:", err)
		return
	}

	applyDefaults(&newConfig)
	storeConfig(newConfig, false)

	log.Debug("Settings file loaded successfully")
}

func SetConfig(newConfig Config) {
	applyDefaults(&newConfig)
	storeConfig(newConfig, true)

	log.Debug("Configuration updated and written to file successfully")
}

func storeConfig(newConfig Config, persistToFile bool) {
	configMu.Lock()
	defer configMu.Unlock()

	configValue.Store(newConfig)

	if persistToFile {
		data, err := json.MarshalIndent(newConfig, "", "  ")
		if err != nil {
			log.Error("Error marshalling new configuration:", err)
			return
		}
		if err := os.WriteFile(settingsFilePath, data, os.ModePerm); err != nil {
			log.Error("Error writing new configuration to file:", err)
		}
	}
}

// applyDefaults backfills zero values so a sparse settings file cannot
// disable row limits or timeouts by accident.
func applyDefaults(cfg *Config) {
	if cfg.Import.MaxRows == 0 {
		cfg.Import.MaxRows = 50000
	}
	if cfg.Import.FetchTimeout == 0 {
		cfg.Import.FetchTimeout = 15000
	}
	if cfg.Import.MaxFetchBytes == 0 {
		cfg.Import.MaxFetchBytes = 10 << 20
	}
	if cfg.Publish.Dir == "" {
		cfg.Publish.Dir = "public/geo"
	}
	if cfg.Publish.BaseURL == "" {
		cfg.Publish.BaseURL = "http://localhost:8082"
	}
	if cfg.Maintenance.DraftCleanupMinutes == 0 {
		cfg.Maintenance.DraftCleanupMinutes = 60
	}
	if cfg.Maintenance.StaleDraftHours == 0 {
		cfg.Maintenance.StaleDraftHours = 24
	}
}

func GetConfig() Config {
	// Get the current Config atomically
	return configValue.Load().(Config)
}

func SetProductionMode(productionMode bool) {
	InProductionMode = productionMode
}
