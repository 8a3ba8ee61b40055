// Package config loads docsync settings.
//
// Sources, lowest precedence first:
//  1. built-in defaults (env-default tags, DefaultRemote)
//  2. a config file: docsync.yaml / docsync.yml (YAML) or
//     docsync.json / docsync.jsonc (JSON with comments)
//  3. .env and .env.local in the working directory
//  4. DOCSYNC_* environment variables
//  5. command-line flags (applied by the cli package)
package config
