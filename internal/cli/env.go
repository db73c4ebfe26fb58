package cli

import "github.com/Jayarmananan1994/notifyme/pkg/config"

func configEnv() string { return config.GetConfigEnv() }

func configDir() string { return config.GetEnv("CONFIG_DIR", "config") }
