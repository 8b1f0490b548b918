package doclink

import "github.com/jward/doclink/internal/store"

// Public type aliases for internal store types used in the Engine and
// Linker APIs. These are Go type aliases (=) — identical to the internal
// types at compile time.

type Store = store.Store
type File = store.File
type Symbol = store.Symbol
