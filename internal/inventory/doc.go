// Package inventory lists what a docs sync materialized, for observability.
//
// Everything here is best-effort: failures are logged as warnings and never
// returned, so a listing problem can not be mistaken for a failed sync.
package inventory
