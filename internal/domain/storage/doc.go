/*
Package storage persists the dashboard application state.

The state is a single document stored under one key in a key-value backend,
mirroring a browser's localStorage entry:

  - FileKV: one file per key inside a directory, replaced atomically
  - MemoryKV: process-local map, used in tests and with STORAGE_BACKEND=memory
  - RedisKV: a Redis string, for deployments that share state between instances

StateStore encodes AppState as JSON on top of any KV. Export writes the same
document in JSON (pretty-printed), YAML or TOML, and DecodeImport turns an
uploaded file back into a generic value for structural validation.
*/
package storage
