// Package layout holds the navigation options shared by every page of the
// documentation site.
//
// The options are static data consumed by the external site renderer; this
// package only declares them and writes them out. It does not parse or
// validate layouts coming from elsewhere.
package layout
