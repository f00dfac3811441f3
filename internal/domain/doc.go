// Package domain contains the core entities of the animforge pipeline:
// frame records, canvas dimensions, the archive manifest, and the
// generation status snapshot.
//
// Entities here have no dependencies on infrastructure. Adapters and the
// application layer operate on these types through the interfaces defined
// in the ports package.
package domain
