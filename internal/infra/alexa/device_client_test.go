package alexa

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"refuse_day_skill/internal/app"
	domainAlexa "refuse_day_skill/internal/domain/alexa"
	"refuse_day_skill/internal/domain/collection"
	"refuse_day_skill/internal/infra/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceClient_FullAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/devices/device-1/settings/address", r.URL.Path)
		assert.Equal(t, "Bearer api-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"addressLine1":"150 Orchard St.","city":"New York","postalCode":"10002","stateOrRegion":"NY"}`))
	}))
	defer srv.Close()

	c := NewDeviceClient(time.Second)
	address, err := c.FullAddress(context.Background(), domainAlexa.Device{ID: "device-1", APIEndpoint: srv.URL + "/", APIAccessToken: "api-token"})
	require.NoError(t, err)

	assert.True(t, address.Complete())
	assert.Equal(t, "150 Orchard St. 10002", address.Lookup())
}

func TestDeviceClient_TimeZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/devices/device-1/settings/System.timeZone", r.URL.Path)
		_, _ = w.Write([]byte(`"America/New_York"`))
	}))
	defer srv.Close()

	zone, err := NewDeviceClient(time.Second).TimeZone(context.Background(), domainAlexa.Device{ID: "device-1", APIEndpoint: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", zone)
}

func TestDeviceClient_ServiceError(t *testing.T) {
	tests := []struct {
		status    int
		forbidden bool
	}{
		{http.StatusForbidden, true},
		{http.StatusInternalServerError, false},
		{http.StatusUnauthorized, false},
	}

	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		_, err := NewDeviceClient(time.Second).FullAddress(context.Background(), domainAlexa.Device{ID: "d", APIEndpoint: srv.URL})
		srv.Close()

		var serviceErr *domainAlexa.ServiceError
		require.True(t, errors.As(err, &serviceErr), "status %d", tc.status)
		assert.Equal(t, tc.status, serviceErr.StatusCode)
		assert.Equal(t, tc.forbidden, serviceErr.Forbidden())
	}
}

func TestDeviceClient_NoAddressSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	address, err := NewDeviceClient(time.Second).FullAddress(context.Background(), domainAlexa.Device{ID: "d", APIEndpoint: srv.URL})
	require.NoError(t, err)
	require.NotNil(t, address)
	assert.False(t, address.Complete())
}

type unusedSchedules struct{ calls int }

func (u *unusedSchedules) GetSchedule(context.Context, string) (collection.ScheduleSnapshot, error) {
	u.calls++
	return collection.ScheduleSnapshot{}, nil
}

type noHoliday struct{}

func (noHoliday) IsHolidayToday(context.Context) (bool, error) { return false, nil }

func TestDeviceClient_NoAddressSetAsksForAddress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/devices/device-1/settings/address":
			w.WriteHeader(http.StatusNoContent)
		case "/v2/devices/device-1/settings/System.timeZone":
			_, _ = w.Write([]byte(`"America/New_York"`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cal, err := collection.NewCalendar(collection.DefaultTimeZone, nil)
	require.NoError(t, err)
	schedules := &unusedSchedules{}
	conversation := app.NewConversationService(
		schedules,
		NewDeviceClient(time.Second),
		noHoliday{},
		cal,
		collection.DefaultTimeZone,
		app.DefaultMessages(),
		logger.Nop(),
	)

	reply := conversation.HandleTurn(context.Background(), app.Turn{
		Kind:         app.TurnIntent,
		Intent:       app.IntentRefuse,
		RefuseSlot:   "garbage",
		Device:       domainAlexa.Device{ID: "device-1", APIEndpoint: srv.URL, APIAccessToken: "api-token"},
		ConsentToken: "consent",
	})

	assert.Equal(t, app.DefaultMessages().AddressMissing, reply.Speech)
	assert.True(t, reply.EndSession)
	assert.Zero(t, schedules.calls)
}
