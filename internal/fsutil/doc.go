// Package fsutil holds the bulk file-system operations of a docs sync:
// recursive copy, the staged swap of the target directory, and file
// enumeration.
package fsutil
