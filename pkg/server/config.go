// Copyright (c) 2026, Joyent, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/richardkiene/triton-cmon-agent/pkg/defaults"
	"github.com/richardkiene/triton-cmon-agent/pkg/errors"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with defaults applied and environment
// overrides parsed. Use this when you want to customize config
// programmatically before handing it to New.
func NewConfig() (*Config, error) {
	return parseConfig()
}

// parseConfig builds the default configuration and applies environment
// overrides. Malformed values are configuration errors so the agent fails
// before binding rather than serving with a half-applied config.
func parseConfig() (*Config, error) {
	cfg := &Config{
		Name:              "cmon-agentd",
		Version:           "undefined",
		Address:           "",
		Port:              9163,
		RateLimit:         100, // 100 req/s
		RateLimitBurst:    200, // burst of 200
		ReadTimeout:       defaults.ServerReadTimeout,
		ReadHeaderTimeout: defaults.ServerReadHeaderTimeout,
		WriteTimeout:      defaults.ServerWriteTimeout,
		IdleTimeout:       defaults.ServerIdleTimeout,
		ShutdownTimeout:   defaults.ServerShutdownTimeout,
	}

	if addr := os.Getenv("CMON_LISTEN_ADDRESS"); addr != "" {
		cfg.Address = addr
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, errors.NewWithContext(errors.ErrCodeConfiguration,
				"malformed PORT value", map[string]any{"value": portStr})
		}
		cfg.Port = port
	}

	// Operators tune this to match the SMF stop/refresh grace period.
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		seconds, err := strconv.Atoi(shutdownStr)
		if err != nil || seconds < 1 {
			return nil, errors.NewWithContext(errors.ErrCodeConfiguration,
				"malformed SHUTDOWN_TIMEOUT_SECONDS value", map[string]any{"value": shutdownStr})
		}
		cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}
