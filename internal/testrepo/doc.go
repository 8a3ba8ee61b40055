// Package testrepo builds throwaway git repositories for tests.
//
// A repository is initialized under t.TempDir() with a local user identity
// (so `git commit` works in CI without a global config), filled with the
// given files, and committed on branch "main". The returned URL uses the
// file:// transport so that shallow and filtered clones behave like they do
// against a real server.
package testrepo
