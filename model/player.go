package model

// RepeatMode controls what happens when the current track finishes.
type RepeatMode string

const (
	RepeatNone RepeatMode = "none"
	RepeatAll  RepeatMode = "all"
	RepeatOne  RepeatMode = "one"
)

// Next returns the mode following m in the toggle cycle none -> all -> one.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatNone:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatNone
	}
}

// PlayerState is a snapshot of a user's player. Volume runs 0.0-1.0 and is
// not validated here; callers clamp before setting.
type PlayerState struct {
	CurrentTrack *Track     `json:"currentTrack"`
	IsPlaying    bool       `json:"isPlaying"`
	Volume       float64    `json:"volume"`
	Progress     float64    `json:"progress"` // Seconds
	Duration     float64    `json:"duration"` // Seconds
	Queue        []Track    `json:"queue"`
	CurrentIndex int        `json:"currentIndex"`
	Shuffle      bool       `json:"shuffle"`
	Repeat       RepeatMode `json:"repeat"`
}
