// Package remote implements the memory tool contract against a MemoryLake
// server over HTTP. Every command is forwarded as a JSON payload wrapped in
// {memory_id, request, payload}; the server answers with {content} on
// success or {error} on failure. Extended management operations (exists,
// list, stats) use the same endpoint with their own payload commands and
// response shapes.
//
// The client is contractually equivalent to the local filesystem store:
// identical command shapes and identical result string conventions, so
// either backend can sit behind the factory transparently. Requests honor
// the caller's context; there is no retry policy at this layer.
package remote
