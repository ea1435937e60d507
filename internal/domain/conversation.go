package domain

import "strings"

// ManualAddStep identifies the field a manual-add conversation is waiting for.
type ManualAddStep string

const (
	StepTopic         ManualAddStep = "topic"
	StepLevel         ManualAddStep = "level"
	StepWord          ManualAddStep = "word"
	StepDefinition    ManualAddStep = "definition"
	StepExample       ManualAddStep = "example"
	StepPronunciation ManualAddStep = "pronunciation"
	StepDone          ManualAddStep = "done"
)

var manualAddOrder = []ManualAddStep{
	StepTopic, StepLevel, StepWord, StepDefinition, StepExample, StepPronunciation, StepDone,
}

var manualAddPrompts = map[ManualAddStep]string{
	StepTopic:         "Topic?",
	StepLevel:         "Level?",
	StepWord:          "Word?",
	StepDefinition:    "Definition?",
	StepExample:       "Example?",
	StepPronunciation: "Pronunciation?",
	StepDone:          "Word saved.",
}

// skipInputs leave an optional field empty.
var skipInputs = map[string]struct{}{"-": {}, "skip": {}}

// ManualAddDraft is the typed state of one manual-add interaction. The caller
// holds it between steps; nothing is kept per learner on the server.
type ManualAddDraft struct {
	Step          ManualAddStep `json:"step"`
	Topic         string        `json:"topic,omitempty"`
	Level         string        `json:"level,omitempty"`
	Headword      string        `json:"word,omitempty"`
	Definition    string        `json:"definition,omitempty"`
	Example       string        `json:"example,omitempty"`
	Pronunciation string        `json:"pronunciation,omitempty"`
}

// NewManualAddDraft starts a conversation at the topic step.
func NewManualAddDraft() ManualAddDraft {
	return ManualAddDraft{Step: StepTopic}
}

// Prompt returns the question for the current step.
func (d ManualAddDraft) Prompt() string {
	return manualAddPrompts[d.Step]
}

// Done reports whether every field has been collected.
func (d ManualAddDraft) Done() bool {
	return d.Step == StepDone
}

// Advance stores input for the current step and moves to the next one.
// The word is the only mandatory answer.
func (d ManualAddDraft) Advance(input string) (ManualAddDraft, error) {
	v := strings.TrimSpace(input)
	if _, skip := skipInputs[strings.ToLower(v)]; skip {
		v = ""
	}

	switch d.Step {
	case StepTopic:
		d.Topic = v
	case StepLevel:
		d.Level = v
	case StepWord:
		if v == "" {
			return d, NewValidationError("word", "required")
		}
		d.Headword = v
	case StepDefinition:
		d.Definition = v
	case StepExample:
		d.Example = v
	case StepPronunciation:
		d.Pronunciation = v
	case StepDone:
		return d, NewValidationError("step", "conversation already finished")
	default:
		return d, NewValidationError("step", "unknown step")
	}

	d.Step = nextStep(d.Step)
	return d, nil
}

// Entry converts a finished draft into an Entry for the given owner.
// The part of speech may be embedded in the word as "run (verb)".
func (d ManualAddDraft) Entry() Entry {
	headword, pos := SplitTitle(d.Headword)
	return Entry{
		Headword:      headword,
		PartOfSpeech:  pos,
		Level:         NormalizeLevel(d.Level),
		Topic:         d.Topic,
		Definition:    d.Definition,
		Example:       d.Example,
		Pronunciation: d.Pronunciation,
		Source:        SourceManual,
	}
}

func nextStep(s ManualAddStep) ManualAddStep {
	for i, step := range manualAddOrder {
		if step == s && i+1 < len(manualAddOrder) {
			return manualAddOrder[i+1]
		}
	}
	return StepDone
}
