package config

import (
	"strconv"

	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:" + strconv.Itoa(DefaultServerPort)})

	// Store defaults
	v.SetDefault("store.driver", DefaultDriver)
	v.SetDefault("store.path", "strand.json")
	v.SetDefault("store.watch", false)

	// Log defaults
	v.SetDefault("log.theme", "everforest")
	v.SetDefault("log.json", false)
}
