package app

import "refuse_day_skill/internal/domain/alexa"

const lastReplyKey = "lastReply"

// SessionAttributes is the key-value state the platform carries between turns
// of one conversation. Values are never modified in place; writers get a copy.
type SessionAttributes map[string]string

// LastReply returns the text spoken on the previous turn, if any.
func (a SessionAttributes) LastReply() (string, bool) {
	text, ok := a[lastReplyKey]
	return text, ok && text != ""
}

// WithLastReply returns a copy of a that remembers text as the last reply.
func (a SessionAttributes) WithLastReply(text string) SessionAttributes {
	out := make(SessionAttributes, len(a)+1)
	for k, v := range a {
		out[k] = v
	}
	out[lastReplyKey] = text
	return out
}

// TurnKind is the platform request type.
type TurnKind string

const (
	TurnLaunch       TurnKind = "LaunchRequest"
	TurnIntent       TurnKind = "IntentRequest"
	TurnSessionEnded TurnKind = "SessionEndedRequest"
)

// Intent names understood by the skill.
const (
	IntentRefuse = "RefuseIntent"
	IntentHelp   = "AMAZON.HelpIntent"
	IntentCancel = "AMAZON.CancelIntent"
	IntentStop   = "AMAZON.StopIntent"
	IntentRepeat = "AMAZON.RepeatIntent"
)

// Turn is one normalized request from the voice platform.
type Turn struct {
	ID           string
	Kind         TurnKind
	Intent       string
	RefuseSlot   string // raw RefuseType slot value
	Device       alexa.Device
	ConsentToken string
	EndReason    string // set for TurnSessionEnded
	Session      SessionAttributes
}

// Reply is what the platform should say back.
type Reply struct {
	Speech            string
	Reprompt          string
	AskForPermissions []string // non-empty asks for a consent card
	EndSession        bool
	Session           SessionAttributes
}
