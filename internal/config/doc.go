// Package config provides configuration loading, merging, and validation
// facilities for the vault client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win over later non-zero fields):
//  1. Environment variables (PASS_GUARD_ prefix)
//  2. Command-line flags
//  3. JSON or YAML config file
//
// Fields still empty after merging are derived from [App.DataDir]. The main
// entry point is [GetClientConfig].
package config
