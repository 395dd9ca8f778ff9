package ratelimit

import (
	"strings"
)

// exempt lists probes that are never limited.
var exempt = map[string]bool{
	"GET /health":  true,
	"GET /metrics": true,
}

// MatchEndpoint returns the rule for a request, or nil when the default
// limit applies. Exact paths win over prefix rules. Exempt endpoints get a
// rule with Limit 0.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if exempt[method+" "+path] {
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
