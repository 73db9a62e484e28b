package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string
	GinMode    string

	Floors        []string
	SpotsPerFloor int
	BikeSpotEvery int // every Nth sequence on a floor is a bike spot

	CarHourlyRate  int64
	BikeHourlyRate int64
	CurrencyPrefix string

	SnowflakeNode int64
}

var defaults = map[string]any{
	"server_port":      "8080",
	"gin_mode":         "release",
	"floors":           "B1,B2,B3",
	"spots_per_floor":  15,
	"bike_spot_every":  3,
	"car_hourly_rate":  50,
	"bike_hourly_rate": 20,
	"currency_prefix":  "Nrs.",
	"snowflake_node":   1,
}

// Load reads .env (optional), then config.yaml (optional), then environment
// variables. Environment wins.
func Load() *Config {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: could not read config file: %v", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		ServerPort:     v.GetString("server_port"),
		GinMode:        v.GetString("gin_mode"),
		Floors:         splitList(v.Get("floors")),
		SpotsPerFloor:  v.GetInt("spots_per_floor"),
		BikeSpotEvery:  v.GetInt("bike_spot_every"),
		CarHourlyRate:  v.GetInt64("car_hourly_rate"),
		BikeHourlyRate: v.GetInt64("bike_hourly_rate"),
		CurrencyPrefix: v.GetString("currency_prefix"),
		SnowflakeNode:  v.GetInt64("snowflake_node"),
	}
	if len(cfg.Floors) == 0 {
		log.Printf("Floor list is empty, using default '%s'", defaults["floors"])
		cfg.Floors = splitList(defaults["floors"])
	}
	if cfg.SpotsPerFloor <= 0 {
		log.Printf("SPOTS_PER_FLOOR=%d is not positive, using default %d", cfg.SpotsPerFloor, defaults["spots_per_floor"])
		cfg.SpotsPerFloor = defaults["spots_per_floor"].(int)
	}
	return cfg
}

// splitList accepts "B1,B2" from the environment or a YAML sequence from the
// config file.
func splitList(raw any) []string {
	var parts []string
	switch val := raw.(type) {
	case string:
		parts = strings.Split(val, ",")
	case []string:
		parts = val
	case []any:
		for _, p := range val {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
