package manifest

import "fmt"

// Audio file naming shared by the generators and the verifier. The manifest
// is the ground truth for which files must exist, so the names live here.

func DrillAudioFile(id, lang string) string {
	return fmt.Sprintf("%s_%s.mp3", id, lang)
}

func DialogueAudioFile(unit int) string {
	return fmt.Sprintf("unit%02d_dialogue_en.mp3", unit)
}

func DialogueLineFile(unit, index int) string {
	return fmt.Sprintf("temp_unit%02d_line%02d_en.mp3", unit, index)
}

func DialogueListFile(unit int) string {
	return fmt.Sprintf("temp_concat_unit%02d.txt", unit)
}
