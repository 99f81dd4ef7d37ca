package alexa

import (
	"refuse_day_skill/internal/app"
	domainAlexa "refuse_day_skill/internal/domain/alexa"
)

const (
	envelopeVersion   = "1.0"
	refuseSlotName    = "RefuseType"
	speechPlainText   = "PlainText"
	cardAskForConsent = "AskForPermissionsConsent"
)

// RequestEnvelope is the part of the Alexa request body the skill reads.
type RequestEnvelope struct {
	Version string   `json:"version" validate:"required"`
	Session *Session `json:"session"`
	Context Context  `json:"context"`
	Request Request  `json:"request"`
}

type Session struct {
	New         bool                   `json:"new"`
	SessionID   string                 `json:"sessionId"`
	Application Application            `json:"application"`
	Attributes  map[string]interface{} `json:"attributes"`
	User        User                   `json:"user"`
}

type Context struct {
	System System `json:"System"`
}

type System struct {
	Application    Application `json:"application"`
	User           User        `json:"user"`
	Device         Device      `json:"device"`
	APIEndpoint    string      `json:"apiEndpoint" validate:"omitempty,url"`
	APIAccessToken string      `json:"apiAccessToken"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID      string       `json:"userId"`
	Permissions *Permissions `json:"permissions,omitempty"`
}

type Permissions struct {
	ConsentToken string `json:"consentToken"`
}

type Device struct {
	DeviceID string `json:"deviceId"`
}

type Request struct {
	Type      string  `json:"type" validate:"required"`
	RequestID string  `json:"requestId"`
	Timestamp string  `json:"timestamp"`
	Locale    string  `json:"locale"`
	Reason    string  `json:"reason,omitempty"`
	Intent    *Intent `json:"intent,omitempty" validate:"required_if=Type IntentRequest"`
}

type Intent struct {
	Name  string          `json:"name" validate:"required"`
	Slots map[string]Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ApplicationID returns the skill id the request was sent to.
func (e *RequestEnvelope) ApplicationID() string {
	if id := e.Context.System.Application.ApplicationID; id != "" {
		return id
	}
	if e.Session != nil {
		return e.Session.Application.ApplicationID
	}
	return ""
}

// Turn converts the envelope into the conversation's input.
func (e *RequestEnvelope) Turn(turnID string) app.Turn {
	sys := e.Context.System
	turn := app.Turn{
		ID:   turnID,
		Kind: app.TurnKind(e.Request.Type),
		Device: domainAlexa.Device{
			ID:             sys.Device.DeviceID,
			APIEndpoint:    sys.APIEndpoint,
			APIAccessToken: sys.APIAccessToken,
		},
		EndReason: e.Request.Reason,
		Session:   app.SessionAttributes{},
	}

	if sys.User.Permissions != nil {
		turn.ConsentToken = sys.User.Permissions.ConsentToken
	}
	if e.Request.Intent != nil {
		turn.Intent = e.Request.Intent.Name
		turn.RefuseSlot = e.Request.Intent.Slots[refuseSlotName].Value
	}
	if e.Session != nil {
		// the skill only ever writes strings; anything else is not ours
		for k, v := range e.Session.Attributes {
			if s, ok := v.(string); ok {
				turn.Session[k] = s
			}
		}
	}
	return turn
}

// ResponseEnvelope is the Alexa response body.
type ResponseEnvelope struct {
	Version           string            `json:"version"`
	SessionAttributes map[string]string `json:"sessionAttributes,omitempty"`
	Response          Response          `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}

type Card struct {
	Type        string   `json:"type"`
	Permissions []string `json:"permissions,omitempty"`
}

// NewResponseEnvelope renders a conversation reply for Alexa.
func NewResponseEnvelope(reply app.Reply) ResponseEnvelope {
	out := ResponseEnvelope{
		Version:           envelopeVersion,
		SessionAttributes: reply.Session,
	}

	if reply.Speech != "" {
		out.Response.OutputSpeech = &OutputSpeech{Type: speechPlainText, Text: reply.Speech}
	}
	if reply.Reprompt != "" {
		out.Response.Reprompt = &Reprompt{OutputSpeech: OutputSpeech{Type: speechPlainText, Text: reply.Reprompt}}
	}
	if len(reply.AskForPermissions) > 0 {
		out.Response.Card = &Card{Type: cardAskForConsent, Permissions: reply.AskForPermissions}
	}

	end := reply.EndSession
	out.Response.ShouldEndSession = &end
	return out
}
