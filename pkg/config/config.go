// Package config resolves the planner's runtime settings: the listen
// address and the provider credentials the proxy keeps off the browser.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"tableflip.dev/planner/pkg/calendar"
	"tableflip.dev/planner/pkg/video"
)

// Config carries everything the serve command needs beyond storage.
type Config struct {
	ListenAddr string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	VideoAPIKey string
	VideoRegion string
}

// Load resolves configuration from a .planner config file or PLANNER_*
// environment variables. Credentials have no defaults; features needing
// them degrade at request time rather than at startup.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("listen", "127.0.0.1:8080")
	v.SetDefault("google.redirect-uri", "http://localhost:3000/auth/callback")
	v.SetDefault("video.region", "JP")
	v.SetConfigName(".planner") // .yaml is implicit
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME")

	// PLANNER_GOOGLE_CLIENT_ID and friends.
	for _, key := range []string{
		"listen",
		"google.client-id",
		"google.client-secret",
		"google.redirect-uri",
		"video.api-key",
		"video.region",
	} {
		_ = v.BindEnv(key, envName(key))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config: %w", err)
		}
	}

	return &Config{
		ListenAddr:         v.GetString("listen"),
		GoogleClientID:     v.GetString("google.client-id"),
		GoogleClientSecret: v.GetString("google.client-secret"),
		GoogleRedirectURI:  v.GetString("google.redirect-uri"),
		VideoAPIKey:        v.GetString("video.api-key"),
		VideoRegion:        v.GetString("video.region"),
	}, nil
}

func envName(key string) string {
	out := make([]rune, 0, len(key)+8)
	for _, r := range "PLANNER_" + key {
		switch r {
		case '.', '-':
			out = append(out, '_')
		default:
			if r >= 'a' && r <= 'z' {
				r -= 'a' - 'A'
			}
			out = append(out, r)
		}
	}
	return string(out)
}

// CalendarOptions shapes the calendar client options.
func (c *Config) CalendarOptions() calendar.Options {
	return calendar.Options{
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		RedirectURI:  c.GoogleRedirectURI,
	}
}

// VideoOptions shapes the video client options.
func (c *Config) VideoOptions() video.Options {
	return video.Options{
		APIKey: c.VideoAPIKey,
		Region: c.VideoRegion,
	}
}
