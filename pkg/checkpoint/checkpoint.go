package checkpoint

// Checkpoint file names, one per pipeline.
const (
	DrillFile    = "drill_checkpoint.json"
	DialogueFile = "dialogue_checkpoint.json"
)

// DrillState is the persisted progress of the drill pipeline. Completed holds
// drill ids whose both language halves were written; Failed is append-only
// and tolerates duplicates.
type DrillState struct {
	Completed []string `json:"completed"`
	Failed    []string `json:"failed"`
	CharsUsed int      `json:"chars_used"`
}

// DialogueState is the persisted progress of the dialogue pipeline, keyed by
// unit number.
type DialogueState struct {
	Completed []int    `json:"completed_units"`
	Failed    []string `json:"failed"`
	CharsUsed int      `json:"chars_used"`
}
