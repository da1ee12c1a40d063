// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// CredentialsFile is the path to the JSON credential store file.
	CredentialsFile string

	// JWTSecret signs the auth cookie tokens.
	JWTSecret string

	// SessionTTL is how long an idle session is kept alive.
	SessionTTL time.Duration

	// DefaultCurrency is the currency assigned to new profiles.
	DefaultCurrency string

	// DefaultRegion is the region assigned to new profiles.
	DefaultRegion string

	// DefaultLanguage is the language assigned to new profiles.
	DefaultLanguage string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.CredentialsFile, "f", "users.json", "path to credential store file")
	flag.StringVar(&options.JWTSecret, "s", "", "secret for signing auth tokens")
	flag.DurationVar(&options.SessionTTL, "ttl", 30*time.Minute, "idle session lifetime")
	flag.StringVar(&options.DefaultCurrency, "currency", "EUR", "default profile currency")
	flag.StringVar(&options.DefaultRegion, "region", "EU", "default profile region")
	flag.StringVar(&options.DefaultLanguage, "lang", "en", "default profile language")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if credentialsFile := os.Getenv("CREDENTIALS_FILE"); credentialsFile != "" {
		options.CredentialsFile = credentialsFile
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		options.JWTSecret = secret
	}

	return options
}
