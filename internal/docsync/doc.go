// Package docsync mirrors one directory of a remote git repository into a
// local target directory.
//
// A run clones the remote into a disposable workspace with a shallow,
// blob-filtered clone, restricts the checkout to the wanted directory with
// cone-mode sparse checkout, and copies the result next to the target. The
// copy is swapped into place only once every step has succeeded, so a
// failed run leaves the previous target untouched.
//
// Steps run strictly in sequence; the first failure aborts the run. The
// workspace and the staging and backup copies are removed on every exit
// path. The one exception is a backup left after a swap that could not be
// rolled back, since it then holds the only copy of the previous docs.
// Relative paths (target, temp dir, a local remote) are resolved against
// the working directory of the process.
package docsync
