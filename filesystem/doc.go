// Package filesystem implements the memory tool contract on top of a local
// directory tree. Virtual paths under /memories map onto <base>/memories;
// every operation canonicalizes its target and verifies it stays inside
// that root before touching the filesystem, so traversal segments and
// symlinks cannot escape the sandbox.
//
// The store is deliberately simple: synchronous whole-file reads and
// writes, no locking, no caching, no index. State lives entirely in the
// filesystem and every operation re-reads it.
package filesystem
