/*
Package ports defines the interfaces that decouple the algebra core from its
collaborators.

# Key Interfaces

  - Session: the recursion entry point handed to every rule, plus read-only numeric context.
  - Cache: memoizes top-level reductions (e.g. in memory or in Redis).
  - Engine: the surface that host adapters (HTTP, MCP, CLI) drive.
*/
package ports
