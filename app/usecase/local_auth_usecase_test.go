package usecase

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"auth-bridge/app/domain"
	"auth-bridge/app/mocks"
)

func localUserWithPassword(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := domain.NewExternalUser("jdoe", "jdoe@example.com", "Jane", "Doe", string(hash))
	require.NoError(t, err)
	user.ExternallyManaged = false
	return user
}

func TestLocalAuthUsecase_Authenticate(t *testing.T) {
	tests := []struct {
		name      string
		password  string
		setupMock func(*testing.T, *mocks.MockUserRepository, *mocks.MockTokenIssuer, *mocks.MockSessionRepository)
		wantErr   error
		wantSys   bool
	}{
		{
			name:     "valid credential issues session",
			password: "correct-horse",
			setupMock: func(t *testing.T, users *mocks.MockUserRepository, tokens *mocks.MockTokenIssuer, sessions *mocks.MockSessionRepository) {
				users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(localUserWithPassword(t, "correct-horse"), nil)
				tokens.EXPECT().Issue("jdoe").Return("signed-token", nil)
				sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				users.EXPECT().RecordLogin(gomock.Any(), "jdoe").Return(nil)
			},
		},
		{
			name:     "unknown user reports invalid credentials",
			password: "whatever",
			setupMock: func(t *testing.T, users *mocks.MockUserRepository, _ *mocks.MockTokenIssuer, _ *mocks.MockSessionRepository) {
				users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(nil, domain.ErrUserNotFound)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "inactive user is rejected",
			password: "correct-horse",
			setupMock: func(t *testing.T, users *mocks.MockUserRepository, _ *mocks.MockTokenIssuer, _ *mocks.MockSessionRepository) {
				user := localUserWithPassword(t, "correct-horse")
				user.Active = false
				users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(user, nil)
			},
			wantErr: domain.ErrUserInactive,
		},
		{
			name:     "credential mismatch",
			password: "wrong-password",
			setupMock: func(t *testing.T, users *mocks.MockUserRepository, _ *mocks.MockTokenIssuer, _ *mocks.MockSessionRepository) {
				users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(localUserWithPassword(t, "correct-horse"), nil)
			},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:     "store failure is a system error",
			password: "correct-horse",
			setupMock: func(t *testing.T, users *mocks.MockUserRepository, _ *mocks.MockTokenIssuer, _ *mocks.MockSessionRepository) {
				users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(nil, errors.New("connection refused"))
			},
			wantSys: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			users := mocks.NewMockUserRepository(ctrl)
			tokens := mocks.NewMockTokenIssuer(ctrl)
			sessions := mocks.NewMockSessionRepository(ctrl)
			tt.setupMock(t, users, tokens, sessions)

			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			uc := NewLocalAuthUsecase(users, tokens, sessions, time.Hour, logger)

			session, err := uc.Authenticate(context.Background(), "jdoe", tt.password)

			switch {
			case tt.wantSys:
				assert.True(t, domain.IsAuthSystemError(err))
				assert.Nil(t, session)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, session)
			default:
				require.NoError(t, err)
				require.NotNil(t, session)
				assert.Equal(t, "jdoe", session.Username)
				assert.Equal(t, "signed-token", session.Token)
			}
		})
	}
}
