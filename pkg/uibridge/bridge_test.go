package uibridge

import (
	"errors"
	"testing"

	"github.com/anunay-mishra-24/loanverify/pkg/eventbus"
	"github.com/anunay-mishra-24/loanverify/pkg/events"
	"github.com/anunay-mishra-24/loanverify/pkg/log"
	"github.com/anunay-mishra-24/loanverify/pkg/mocks"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestBridge(t *testing.T) (*Bridge, *mocks.MockEventBus) {
	t.Helper()

	bus := &mocks.MockEventBus{}

	return NewBridge(bus, log.WithModule("test")), bus
}

func capturedEvent(bus *mocks.MockEventBus) eventbus.Event {
	return bus.Calls[0].Arguments.Get(2).(eventbus.Event)
}

func TestNotify_PublishesNotificationEvent(t *testing.T) {
	bridge, bus := newTestBridge(t)

	bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	bridge.Notify(t.Context(), "Verification", "Verification completed successfully", protocol.SeveritySuccess)

	bus.AssertNumberOfCalls(t, "Publish", 1)

	notification, ok := capturedEvent(bus).(events.Notification)
	require.True(t, ok)
	assert.Equal(t, "Verification", notification.Title)
	assert.Equal(t, string(protocol.SeveritySuccess), notification.Severity)
	assert.NotEmpty(t, notification.ID)
}

func TestNotify_SwallowsPublishFailure(t *testing.T) {
	bridge, bus := newTestBridge(t)

	bus.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	// Notifications are fire-and-forget; the dispatch path must not see the
	// transport failure.
	bridge.Notify(t.Context(), "Verification", "message", protocol.SeverityError)
}

func TestReload_CarriesRecordID(t *testing.T) {
	bridge, bus := newTestBridge(t)

	bus.On("Publish", mock.Anything, "rec-1", mock.Anything).Return(nil)

	require.NoError(t, bridge.Reload(t.Context(), "rec-1"))

	reload, ok := capturedEvent(bus).(events.ListReload)
	require.True(t, ok)
	assert.Equal(t, "rec-1", reload.RecordID)
	assert.Equal(t, events.ListReloadEvent, reload.GetType())
}

func TestOpenMissingFields_CarriesFieldList(t *testing.T) {
	bridge, bus := newTestBridge(t)

	bus.On("Publish", mock.Anything, "rec-1", mock.Anything).Return(nil)

	require.NoError(t, bridge.OpenMissingFields(t.Context(), "rec-1", []string{"pan", "dateOfBirth"}))

	dialog, ok := capturedEvent(bus).(events.MissingFields)
	require.True(t, ok)
	assert.Equal(t, []string{"pan", "dateOfBirth"}, dialog.Fields)
}

func TestOpenSecondaryInput_CarriesApplicant(t *testing.T) {
	bridge, bus := newTestBridge(t)

	bus.On("Publish", mock.Anything, "app-1", mock.Anything).Return(nil)

	applicant := map[string]any{"name": "R. Sharma"}
	require.NoError(t, bridge.OpenSecondaryInput(t.Context(), "app-1", applicant))

	input, ok := capturedEvent(bus).(events.SecondaryInput)
	require.True(t, ok)
	assert.Equal(t, "app-1", input.ApplicantID)
	assert.Equal(t, applicant, input.Applicant)
}

func TestNavigation_Targets(t *testing.T) {
	tests := []struct {
		name   string
		open   func(b *Bridge) error
		target string
	}{
		{
			name:   "detail",
			open:   func(b *Bridge) error { return b.OpenDetail(t.Context(), "rec-1") },
			target: NavigationTargetDetail,
		},
		{
			name:   "edit",
			open:   func(b *Bridge) error { return b.OpenEdit(t.Context(), "rec-1") },
			target: NavigationTargetEdit,
		},
		{
			name: "external tool",
			open: func(b *Bridge) error {
				return b.OpenExternalTool(t.Context(), "rec-1", map[string]any{"tool": "bre"})
			},
			target: NavigationTargetExternalTool,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge, bus := newTestBridge(t)

			bus.On("Publish", mock.Anything, "rec-1", mock.Anything).Return(nil)

			require.NoError(t, tt.open(bridge))

			navigation, ok := capturedEvent(bus).(events.Navigation)
			require.True(t, ok)
			assert.Equal(t, tt.target, navigation.Target)
		})
	}
}
