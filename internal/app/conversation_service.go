package app

import (
	"context"
	"errors"
	"fmt"

	"refuse_day_skill/internal/domain/alexa"
	"refuse_day_skill/internal/domain/collection"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ScheduleProvider returns the decoded collection schedule of an address.
type ScheduleProvider interface {
	GetSchedule(ctx context.Context, address string) (collection.ScheduleSnapshot, error)
}

// ConversationService answers one voice turn at a time. It is the single place
// where collaborator failures are turned into spoken replies.
type ConversationService struct {
	schedules    ScheduleProvider
	devices      alexa.DeviceClient
	holidays     collection.HolidayChecker
	calendar     *collection.Calendar
	expectedZone string
	messages     Messages
	logger       *logrus.Entry
}

func NewConversationService(
	schedules ScheduleProvider,
	devices alexa.DeviceClient,
	holidays collection.HolidayChecker,
	calendar *collection.Calendar,
	expectedZone string,
	messages Messages,
	logger *logrus.Entry,
) *ConversationService {
	return &ConversationService{
		schedules:    schedules,
		devices:      devices,
		holidays:     holidays,
		calendar:     calendar,
		expectedZone: expectedZone,
		messages:     messages,
		logger:       logger.WithField("component", "conversation_service"),
	}
}

// HandleTurn produces the reply for turn. It never fails: errors end up as
// one of the fixed messages.
func (s *ConversationService) HandleTurn(ctx context.Context, turn Turn) Reply {
	logCtx := s.logger.WithField("turn_id", turn.ID).WithField("request_type", turn.Kind)

	var reply Reply
	switch turn.Kind {
	case TurnLaunch:
		reply = Reply{Speech: s.messages.Welcome, Reprompt: s.messages.WhatDoYouWant}
	case TurnSessionEnded:
		logCtx.WithField("reason", turn.EndReason).Info("Session ended")
		return Reply{EndSession: true, Session: turn.Session}
	case TurnIntent:
		reply = s.handleIntent(ctx, turn, logCtx.WithField("intent", turn.Intent))
	default:
		logCtx.Warn("Unsupported request type")
		reply = Reply{Speech: s.messages.Unhandled, Reprompt: s.messages.Unhandled}
	}

	reply.Session = turn.Session.WithLastReply(reply.Speech)
	return reply
}

func (s *ConversationService) handleIntent(ctx context.Context, turn Turn, logCtx *logrus.Entry) Reply {
	switch turn.Intent {
	case IntentRefuse:
		rt, err := collection.ParseRefuseType(turn.RefuseSlot)
		if err != nil {
			logCtx.WithField("slot", turn.RefuseSlot).Info("Refuse type not recognized")
			return Reply{Speech: s.messages.WhatDoYouWant, Reprompt: s.messages.WhatDoYouWant}
		}
		text, err := s.answerRefuse(ctx, turn, rt, logCtx.WithField("refuse_type", rt))
		if err != nil {
			return s.replyForError(err, rt, logCtx)
		}
		logCtx.Info("Refuse day answered")
		return Reply{Speech: text, Reprompt: s.messages.WhatDoYouWant}
	case IntentRepeat:
		if last, ok := turn.Session.LastReply(); ok {
			return Reply{Speech: last, Reprompt: s.messages.WhatDoYouWant}
		}
		return Reply{Speech: s.messages.WhatDoYouWant, Reprompt: s.messages.WhatDoYouWant}
	case IntentHelp:
		return Reply{Speech: s.messages.Help, Reprompt: s.messages.Help}
	case IntentCancel:
		return Reply{Speech: s.messages.Goodbye, EndSession: true}
	case IntentStop:
		return Reply{Speech: s.messages.Stop, EndSession: true}
	default:
		logCtx.Info("Unhandled intent")
		return Reply{Speech: s.messages.Unhandled, Reprompt: s.messages.Unhandled}
	}
}

// answerRefuse runs the lookup chain for one refuse type. The device time zone
// is checked before any schedule lookup is made.
func (s *ConversationService) answerRefuse(ctx context.Context, turn Turn, rt collection.RefuseType, logCtx *logrus.Entry) (string, error) {
	if turn.ConsentToken == "" {
		return "", ErrMissingPermission
	}

	address, zone, err := s.deviceContext(ctx, turn)
	if err != nil {
		return "", err
	}
	if zone != s.expectedZone {
		logCtx.WithField("device_time_zone", zone).Info("Device outside expected time zone")
		return "", ErrTimeZoneMismatch
	}
	if address == nil || !address.Complete() {
		return "", ErrMissingAddressFields
	}

	snapshot, err := s.schedules.GetSchedule(ctx, address.Lookup())
	if err != nil {
		return "", err
	}

	next, err := s.calendar.NextOccurrence(snapshot.Days(rt))
	if err != nil {
		return "", err
	}
	logCtx.WithField("day", next.Day).WithField("days_until", next.DaysUntil).Debug("Next pickup computed")

	// the holiday schedule only changes a same-day answer
	var holiday bool
	if next.IsToday() {
		holiday, err = s.holidays.IsHolidayToday(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to check holiday schedule: %w", err)
		}
	}

	return s.messages.PickupReply(rt, next, snapshot.ResidentialRoutingTime, holiday), nil
}

// deviceContext fetches the device address and time zone concurrently.
func (s *ConversationService) deviceContext(ctx context.Context, turn Turn) (*alexa.Address, string, error) {
	var (
		address *alexa.Address
		zone    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.devices.FullAddress(gctx, turn.Device)
		if err != nil {
			return fmt.Errorf("failed to get device address: %w", err)
		}
		address = a
		return nil
	})
	g.Go(func() error {
		z, err := s.devices.TimeZone(gctx, turn.Device)
		if err != nil {
			return fmt.Errorf("failed to get device time zone: %w", err)
		}
		zone = z
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}
	return address, zone, nil
}

func (s *ConversationService) replyForError(err error, rt collection.RefuseType, logCtx *logrus.Entry) Reply {
	var serviceErr *alexa.ServiceError

	switch {
	case errors.Is(err, ErrMissingPermission):
		logCtx.Info("Address permission missing")
		return s.permissionReply()
	case errors.As(err, &serviceErr) && serviceErr.Forbidden():
		logCtx.WithError(err).Info("Alexa API refused address access")
		return s.permissionReply()
	case errors.As(err, &serviceErr):
		logCtx.WithError(err).Warn("Alexa device API failed")
		return Reply{Speech: s.messages.LocationFailure, Reprompt: s.messages.LocationFailure}
	case errors.Is(err, ErrTimeZoneMismatch):
		return Reply{Speech: s.messages.TimeZoneInvalid, EndSession: true}
	case errors.Is(err, ErrMissingAddressFields):
		logCtx.Info("Device address incomplete")
		return Reply{Speech: s.messages.AddressMissing, EndSession: true}
	case errors.Is(err, collection.ErrAddressNotFound):
		logCtx.Info("Address not found by geocoder")
		return Reply{Speech: s.messages.AddressNotFound, EndSession: true}
	case errors.Is(err, collection.ErrEmptySchedule):
		logCtx.Info("No collection days for refuse type")
		return Reply{Speech: withRefuse(s.messages.ScheduleUnknown, rt), EndSession: true}
	default:
		logCtx.WithError(err).Error("Failed to answer refuse query")
		return Reply{Speech: s.messages.Error, EndSession: true}
	}
}

func (s *ConversationService) permissionReply() Reply {
	return Reply{
		Speech:            s.messages.NotifyMissingPermissions,
		AskForPermissions: []string{alexa.AddressPermission},
		EndSession:        true,
	}
}
