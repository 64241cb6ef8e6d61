// Package templates holds the embedded sample files that dmon init writes.
package templates

import (
	_ "embed"
)

//go:embed config.template

// ConfigYAML is the sample config.yaml with every key the agent reads.
var ConfigYAML []byte

//go:embed env.template

// EnvFile is the sample .env listing the DMON_ environment overrides.
var EnvFile []byte
