// Package api holds the OpenAPI description of the HTTP interface.
package api

import _ "embed"

// OpenAPISpec is the raw openapi.yaml document.
//
//go:embed openapi.yaml
var OpenAPISpec []byte
