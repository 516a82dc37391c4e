package pipeline

import "slices"

// Slot names a path-valued field of Record.
type Slot int

const (
	SlotMain Slot = iota
	SlotIntro
	SlotOutro
	SlotActive
	SlotFinal
)

func (s Slot) String() string {
	switch s {
	case SlotMain:
		return "main"
	case SlotIntro:
		return "intro"
	case SlotOutro:
		return "outro"
	case SlotActive:
		return "active"
	case SlotFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Record is the mutable state threaded through one pipeline run.
type Record struct {
	MainFile    string
	IntroFile   string
	OutroFile   string
	ActiveFile  string
	FinalOutput string

	// DownloadedFiles lists every fetched file in order.
	DownloadedFiles []string
	// IntermediateFiles lists scratch files eligible for cleanup, without duplicates.
	IntermediateFiles []string
}

// NewRecord returns an empty record for a fresh run.
func NewRecord() *Record {
	return &Record{}
}

// Get returns the path stored in slot.
func (r *Record) Get(slot Slot) string {
	switch slot {
	case SlotMain:
		return r.MainFile
	case SlotIntro:
		return r.IntroFile
	case SlotOutro:
		return r.OutroFile
	case SlotActive:
		return r.ActiveFile
	case SlotFinal:
		return r.FinalOutput
	default:
		return ""
	}
}

// Set stores path in slot.
func (r *Record) Set(slot Slot, path string) {
	switch slot {
	case SlotMain:
		r.MainFile = path
	case SlotIntro:
		r.IntroFile = path
	case SlotOutro:
		r.OutroFile = path
	case SlotActive:
		r.ActiveFile = path
	case SlotFinal:
		r.FinalOutput = path
	}
}

// AddDownloaded appends path to the download audit trail.
func (r *Record) AddDownloaded(path string) {
	r.DownloadedFiles = append(r.DownloadedFiles, path)
}

// TrackIntermediate marks path for cleanup unless it is already tracked.
func (r *Record) TrackIntermediate(path string) {
	if path == "" || slices.Contains(r.IntermediateFiles, path) {
		return
	}
	r.IntermediateFiles = append(r.IntermediateFiles, path)
}

// untrack drops path from the cleanup list.
func (r *Record) untrack(path string) {
	r.IntermediateFiles = slices.DeleteFunc(r.IntermediateFiles, func(p string) bool { return p == path })
}
