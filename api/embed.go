// Package api embeds the portald tool contract.
package api

import _ "embed"

// ToolsContract is the chatbot tool contract YAML.
//
//go:embed tools.yaml
var ToolsContract []byte
