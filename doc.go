/*
Package sara drives a single-purpose voice conversation that books an
appointment: greet the caller, check availability through an external
calendar tool, let the caller pick a time slot, collect identity fields one
question at a time, and submit the appointment to the backend.

The conversation is a typed graph of nodes (start, prompt, tool, end) walked
by an orchestrator one caller turn at a time. Hosts integrate through three
calls:

	eng, _ := sara.New(booking.Flow())
	st, out, _ := eng.Begin(ctx, "")          // out: first question or tool call
	out, _ = eng.Advance(ctx, st, utterance)  // one caller turn
	out, _ = eng.Resume(ctx, st, toolResult)  // feed a tool outcome back

or through the Turn helpers, which also perform the tool invocations via a
ports.ToolGateway. See pkg/booking for the flow Sara ships with, pkg/graphio
for loading flows from YAML, and pkg/runner for an interactive loop.
*/
package sara
