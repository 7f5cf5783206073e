// Package sim provides the tick-based engine for the treasure map simulation.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - grid.go: GridMap, cell kinds and treasure collection
//   - agent.go: Agent lifecycle (active → done) and per-directive proposals
//   - resolver.go: the two-phase propose/commit tick
//   - simulator.go: the run loop, termination and stall detection
//
// # Architecture
//
// The sim package holds the core; format adapters and sinks live in
// sub-packages:
//   - sim/mapfile/: the line-oriented map text format (parse and emit)
//   - sim/scenario/: the YAML scenario format with schema validation
//   - sim/trace/: per-tick decision records and their compressed sink
//   - sim/results/: SQLite store of finished runs
//
// # Tick semantics
//
// Every tick, each active agent proposes a target cell and heading from the
// directive under its cursor. Proposals are then committed in agent order.
// An agent whose target was proposed by another agent is contested: under
// the default "block-all" ConflictPolicy it keeps its position, heading and
// cursor and retries next tick. Uncontested agents always consume their
// directive; they move unless the target is a mountain or their own cell,
// and collect one treasure when entering a treasure cell.
//
// A tick in which no agent consumes a directive would repeat forever, so Run
// reports it as ErrStalled.
package sim
