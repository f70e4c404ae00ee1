/*
Package ports defines the boundary interfaces between the conversation core
and its hosts:

  - ToolGateway: invokes the two external tools with a tri-state result.
  - StateStore: persists call state between turns (memory, redis).
  - DistributedLocker: serializes access to one call across replicas.

The orchestrator depends only on these contracts; adapters provide the
implementations.
*/
package ports
