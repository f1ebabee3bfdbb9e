// Package planner handles the planning phase of a split.
//
// The planner generates deterministic partition plans that divide the body
// pages of a source document across a fixed number of output parts. It performs
// no I/O: given the same page count, part count and intro range it always
// produces the same plan.
//
// Key responsibilities:
//   - Validate part counts and intro ranges
//   - Distribute body pages contiguously, front-loading the division remainder
//   - Attach the shared intro range to every part
package planner
