/*
Package ports defines the driven ports (interfaces) for the descent engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various storage backends, display hosts and transports.

# Key Interfaces

  - Engine: The stateless compile/sample/trace core used by the HTTP and MCP adapters.
  - TraceStore: Responsible for persisting and loading finished traces.
  - Renderer: The display host driven by the session controller.
  - DistributedLocker: Provides distributed locking so one trace is replayed at a time.
*/
package ports
