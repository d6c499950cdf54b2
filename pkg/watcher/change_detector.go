package watcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

// Action is what an editing session should do about a change on disk.
type Action int

const (
	ActionIgnore   Action = iota // Nothing new on disk
	ActionReload                 // Replace the pool with the file's
	ActionConflict               // The file changed under unsaved edits
	ActionMissing                // The file is gone
)

func (a Action) String() string {
	switch a {
	case ActionReload:
		return "reload"
	case ActionConflict:
		return "conflict"
	case ActionMissing:
		return "missing"
	}
	return "ignore"
}

// ChangeAnalysis describes what changed and what to do about it
type ChangeAnalysis struct {
	Action       Action
	Reason       string
	Fingerprint  string // Of the file as it is now, empty when removed
	ChangedFiles []string
}

// AnalyzeChanges decides how a session reacts to a change of its project
// file. known is the fingerprint of the file as the session last loaded or
// saved it, so the session's own saves are not mistaken for outside edits.
// A dirty session is never reloaded: its edits would be lost.
func AnalyzeChanges(event ChangeEvent, path, known string, dirty bool) *ChangeAnalysis {
	analysis := &ChangeAnalysis{ChangedFiles: event.Paths}

	if event.Type == ChangeTypeRemove {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			analysis.Action = ActionMissing
			analysis.Reason = "project file was removed"
			return analysis
		}
	}

	fingerprint, err := Fingerprint(path)
	if err != nil {
		analysis.Action = ActionMissing
		analysis.Reason = err.Error()
		return analysis
	}
	analysis.Fingerprint = fingerprint

	switch {
	case fingerprint == known:
		analysis.Action = ActionIgnore
		analysis.Reason = "file content unchanged"
	case dirty:
		analysis.Action = ActionConflict
		analysis.Reason = "project file changed on disk while there are unsaved edits"
	default:
		analysis.Action = ActionReload
		analysis.Reason = "project file changed on disk"
	}
	return analysis
}

// Fingerprint identifies the content of a file.
func Fingerprint(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
