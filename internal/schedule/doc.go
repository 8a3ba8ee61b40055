// Package schedule repeats a docs sync on a fixed interval.
package schedule
