// Package memorytool defines the memory tool contract shared by every
// backend: the typed command set, the Tool and Store interfaces, the error
// kinds, and the dispatch helpers that route a decoded command to the
// matching operation.
//
// Commands mirror the wire payloads exchanged with LLM tool-calling
// runtimes (a JSON object tagged by its "command" field). Backends live in
// sibling packages: github.com/memorylake/memorylake-go/filesystem for the
// local store and github.com/memorylake/memorylake-go/remote for the HTTP
// client. Depend on the interfaces here and pick an implementation at
// wiring time; the two backends share no state, only this contract.
package memorytool
