package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/bigredeye/studentmanager/pkg/client/students"
	"github.com/bigredeye/studentmanager/pkg/conf"
)

type Config struct {
	Backend struct {
		BaseURL     string
		Timeout     time.Duration
		RetryCount  int
		// Zero disables the startup probe.
		WaitTimeout time.Duration
	}

	Server struct {
		ListenAddress string
		Cookies       struct {
			AuthenticationKey string
			EncryptionKey     string
			Secure            bool
		}
	}

	Sessions struct {
		TTL      time.Duration
		MaxViews int64
	}

	Log struct {
		Development bool
		File        string
		MaxSizeMB   int
		MaxBackups  int
	}
}

var defaults = map[string]interface{}{
	"backend.baseurl":       students.DefaultBaseURL,
	"backend.timeout":       students.DefaultTimeout,
	"backend.retrycount":    0,
	"backend.waittimeout":   0,
	"server.listenaddress":  "localhost:8080",
	"server.cookies.secure": false,
	"sessions.ttl":          time.Hour,
	"sessions.maxviews":     1000,
	"log.development":       true,
	"log.maxsizemb":         100,
	"log.maxbackups":        3,
}

func ParseConfig(path string) (*Config, error) {
	config := &Config{}
	err := conf.ParseConfig(config,
		conf.EnvPrefix("SM"),
		conf.File(path),
		conf.Defaults(defaults),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse config")
	}
	return config, nil
}
