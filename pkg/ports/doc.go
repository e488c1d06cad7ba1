/*
Package ports defines the driven ports (interfaces) for the wayfinder engine and
search overlay.

These interfaces decouple the core logic from external implementations, allowing
the navigator and the overlay to work with various graph sources, session
stores and search indexes.

# Key Interfaces

  - GraphLoader: Responsible for loading node definitions (e.g., from Loam, YAML or Memory).
  - StateStore: Responsible for keeping navigator sessions while they are mounted.
  - DistributedLocker: Provides distributed locking for concurrent session access.
  - SearchIndex: The pre-built, externally maintained documentation index.
  - ContentSource: The documentation content collection.
*/
package ports
