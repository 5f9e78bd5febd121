// Package version holds the client version constant in a dependency-free
// location so both the root package and the remote transport can stamp it.
package version

// Version is the memorylake-go client version reported to servers via the
// x-memorylake-client-version header.
const Version = "0.1.0"
