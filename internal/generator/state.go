// SPDX-License-Identifier: MPL-2.0

package generator

const (
	// StateIdle is the state before a run starts.
	StateIdle State = iota
	// StateLoading reads the per-directory configuration files.
	StateLoading
	// StateBuilding turns the configuration records into the model.
	StateBuilding
	// StateGenerating renders the model.
	StateGenerating
	// StateSplicing merges the rendered text into the manifest.
	StateSplicing
	// StateWriting replaces the manifest on disk.
	StateWriting
	// StateDone is a successful run.
	StateDone
	// StateFailed is a run that stopped on an error.
	StateFailed
)

// State is a stage of a generation run.
type State int

// String returns the name of the State.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateBuilding:
		return "building"
	case StateGenerating:
		return "generating"
	case StateSplicing:
		return "splicing"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
