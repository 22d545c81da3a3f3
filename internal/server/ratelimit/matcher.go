package ratelimit

import (
	"strings"
)

var unlimitedPaths = map[string]bool{
	"/":        true,
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint returns the EndpointConfig for a request, or nil when the
// default limit applies. Health and metrics GETs match a zero (unlimited) config.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
