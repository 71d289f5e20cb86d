package notifier_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/samandr77/microservices/challenge/internal/entity"
	"github.com/samandr77/microservices/challenge/internal/mocks"
	"github.com/samandr77/microservices/challenge/internal/notifier"
)

func TestService_SendMessage(t *testing.T) {
	t.Parallel()

	gatewayErr := errors.New("gateway timeout")

	tests := []struct {
		name  string
		msg   entity.Message
		setup func(mailer *mocks.MockMailer, sms *mocks.MockSMSSender)
		errFn require.ErrorAssertionFunc
	}{
		{
			name: "email",
			msg: entity.Message{
				Type:       entity.MessageTypeEmail,
				Subject:    "Code",
				Message:    "123456",
				Recipients: []string{"ada@example.com"},
			},
			setup: func(mailer *mocks.MockMailer, _ *mocks.MockSMSSender) {
				mailer.EXPECT().SendMessage("Code", "123456", []string{"ada@example.com"}).Return(nil)
			},
			errFn: require.NoError,
		},
		{
			name:  "sms",
			msg:   entity.Message{Type: entity.MessageTypeSMS, Message: "123456", Recipients: []string{"15551234567"}},
			setup: func(_ *mocks.MockMailer, sms *mocks.MockSMSSender) {
				sms.EXPECT().SendMessage(gomock.Any(), "123456", []string{"15551234567"}).Return(nil)
			},
			errFn: require.NoError,
		},
		{
			name:  "sms gateway failure",
			msg:   entity.Message{Type: entity.MessageTypeSMS, Message: "123456", Recipients: []string{"15551234567"}},
			setup: func(_ *mocks.MockMailer, sms *mocks.MockSMSSender) {
				sms.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(gatewayErr)
			},
			errFn: func(t require.TestingT, err error, _ ...any) {
				require.ErrorIs(t, err, gatewayErr)
			},
		},
		{
			name:  "unknown type",
			msg:   entity.Message{Type: "pigeon"},
			setup: func(*mocks.MockMailer, *mocks.MockSMSSender) {},
			errFn: func(t require.TestingT, err error, _ ...any) {
				require.ErrorIs(t, err, entity.ErrUnknownMessageType)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mailer := mocks.NewMockMailer(ctrl)
			sms := mocks.NewMockSMSSender(ctrl)

			tt.setup(mailer, sms)

			err := notifier.NewService(mailer, sms).SendMessage(context.Background(), tt.msg)
			tt.errFn(t, err)
		})
	}
}
