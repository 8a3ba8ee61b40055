// Package workspace manages the ephemeral directory a docs sync clones into.
package workspace
