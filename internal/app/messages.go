package app

import (
	"fmt"
	"strings"

	"refuse_day_skill/internal/domain/collection"
)

// refusePlaceholder is replaced with the spoken refuse type in templates.
const refusePlaceholder = "{RefuseType}"

// Messages holds every spoken text of the skill.
type Messages struct {
	Welcome                  string
	WhatDoYouWant            string
	NotifyMissingPermissions string
	AddressMissing           string
	AddressNotFound          string
	TimeZoneInvalid          string
	ScheduleNormal           string
	ScheduleHoliday          string
	ScheduleUnknown          string
	PickupTomorrow           string
	PickupToday              string
	Error                    string
	LocationFailure          string
	Goodbye                  string
	Unhandled                string
	Help                     string
	Stop                     string
}

// DefaultMessages returns the English reply set.
func DefaultMessages() Messages {
	return Messages{
		Welcome:                  "Ask me 'when is the next garbage day?' or 'when is the next recycling day?'",
		WhatDoYouWant:            "What do you want to ask?",
		NotifyMissingPermissions: "Please enable Location permissions in the Amazon Alexa app.",
		AddressMissing:           "Set your address including street number, street, and zip code in the Amazon Alexa app.",
		AddressNotFound:          "Your address was not found in the Sanitation database. Is your residence legal?",
		TimeZoneInvalid:          "Your time zone is not set to New York in the Amazon Alexa App. Consider moving.",
		ScheduleNormal:           "Your next {RefuseType} day is",
		ScheduleHoliday:          "Sanitation is on holiday schedule. Set your {RefuseType} out after 4 PM today for pickup tomorrow.",
		ScheduleUnknown:          "Unable to find your {RefuseType} schedule. What even are you throwing out?",
		PickupTomorrow:           "Set your {RefuseType} out after 4 PM today.",
		PickupToday:              "Pickup times are",
		Error:                    "Oops! Looks like something went wrong.",
		LocationFailure:          "There was an error with the Device Address API. Please try again.",
		Goodbye:                  "Bye!",
		Unhandled:                "This skill doesn't support that. Please ask something else.",
		Help:                     "You can use this skill by asking something like: when is the next garbage day?",
		Stop:                     "Bye!",
	}
}

func withRefuse(template string, rt collection.RefuseType) string {
	return strings.ReplaceAll(template, refusePlaceholder, string(rt))
}

// SpokenRoutingTime turns "Daily: 6 AM - 12 PM" into "6 AM to 12 PM".
func SpokenRoutingTime(raw string) string {
	t := strings.TrimPrefix(strings.TrimSpace(raw), "Daily: ")
	return strings.ReplaceAll(t, " - ", " to ")
}

// PickupReply renders the answer for the next pickup of rt.
func (m Messages) PickupReply(rt collection.RefuseType, next collection.NextOccurrence, routingTime string, holiday bool) string {
	lead := withRefuse(m.ScheduleNormal, rt)
	day := next.Day.String()

	switch {
	case next.IsToday() && holiday:
		return withRefuse(m.ScheduleHoliday, rt)
	case next.IsToday():
		return fmt.Sprintf("%s today, %s. %s %s.", lead, day, m.PickupToday, SpokenRoutingTime(routingTime))
	case next.IsTomorrow():
		return fmt.Sprintf("%s tomorrow, %s. %s", lead, day, withRefuse(m.PickupTomorrow, rt))
	default:
		return fmt.Sprintf("%s in %d days, on %s.", lead, next.DaysUntil, day)
	}
}
