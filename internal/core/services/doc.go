// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The tracker service walks a run through its phases: fetch the
// directed nodes, normalise and hash them, diff against the persisted
// baseline, then persist the fresh specs as the next baseline.
package services
