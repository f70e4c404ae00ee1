/*
Package domain defines the core types of the Sara conversation engine: the
immutable conversation Graph, the per-call State, tool invocations and
results, orchestrator outcomes, lifecycle events, and the error taxonomy.

It has no dependencies on the runtime or on any adapter, so hosts and
adapters can exchange these values freely.
*/
package domain
