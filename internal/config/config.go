package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from configs/app.env
// and overridable through environment variables.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	DBSource      string `mapstructure:"DB_SOURCE"`

	GeocoderBaseURL string        `mapstructure:"GEOCODER_BASE_URL"`
	GeocoderToken   string        `mapstructure:"GEOCODER_TOKEN"`
	GeocoderTimeout time.Duration `mapstructure:"GEOCODER_TIMEOUT"`

	GeocodeCacheTTL time.Duration `mapstructure:"GEOCODE_CACHE_TTL"`

	CheckRateLimit         int           `mapstructure:"CHECK_RATE_LIMIT"`
	CheckRateWindow        time.Duration `mapstructure:"CHECK_RATE_WINDOW"`
	AutocompleteRateLimit  int           `mapstructure:"AUTOCOMPLETE_RATE_LIMIT"`
	AutocompleteRateWindow time.Duration `mapstructure:"AUTOCOMPLETE_RATE_WINDOW"`
	RateLimitMaxClients    int           `mapstructure:"RATE_LIMIT_MAX_CLIENTS"`

	ListedBuildingRadiusMeters float64       `mapstructure:"LISTED_BUILDING_RADIUS_METERS"`
	SearchRecordTimeout        time.Duration `mapstructure:"SEARCH_RECORD_TIMEOUT"`
}

// LoadConfig reads configuration from the given directory.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	viper.SetDefault("GEOCODER_BASE_URL", "https://api.mapbox.com")
	viper.SetDefault("GEOCODER_TIMEOUT", 5*time.Second)
	viper.SetDefault("GEOCODE_CACHE_TTL", time.Hour)
	viper.SetDefault("CHECK_RATE_LIMIT", 10)
	viper.SetDefault("CHECK_RATE_WINDOW", time.Minute)
	viper.SetDefault("AUTOCOMPLETE_RATE_LIMIT", 60)
	viper.SetDefault("AUTOCOMPLETE_RATE_WINDOW", time.Minute)
	viper.SetDefault("RATE_LIMIT_MAX_CLIENTS", 10000)
	viper.SetDefault("LISTED_BUILDING_RADIUS_METERS", 15)
	viper.SetDefault("SEARCH_RECORD_TIMEOUT", 5*time.Second)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return Config{}, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, err
	}

	return config, nil
}
