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

	"auth-bridge/app/domain"
	"auth-bridge/app/mocks"
)

type authMocks struct {
	directory *mocks.MockDirectoryAuthenticator
	mapper    *mocks.MockIdentityMapper
	reconcile *mocks.MockReconciler
	local     *mocks.MockLocalAuthenticator
	tokens    *mocks.MockTokenIssuer
	sessions  *mocks.MockSessionRepository
	users     *mocks.MockUserRepository
}

func newAuthUsecaseForTest(ctrl *gomock.Controller) (*AuthUsecase, *authMocks) {
	m := &authMocks{
		directory: mocks.NewMockDirectoryAuthenticator(ctrl),
		mapper:    mocks.NewMockIdentityMapper(ctrl),
		reconcile: mocks.NewMockReconciler(ctrl),
		local:     mocks.NewMockLocalAuthenticator(ctrl),
		tokens:    mocks.NewMockTokenIssuer(ctrl),
		sessions:  mocks.NewMockSessionRepository(ctrl),
		users:     mocks.NewMockUserRepository(ctrl),
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	uc := NewAuthUsecase(m.directory, m.mapper, m.reconcile, m.local, m.tokens, m.sessions, m.users, time.Hour, logger)
	return uc, m
}

func directoryIdentity() *domain.DirectoryIdentity {
	identity := domain.NewDirectoryIdentity("jdoe")
	identity.Email = "jdoe@example.com"
	identity.FirstName = "Jane"
	identity.LastName = "Doe"
	return identity
}

func reconciledUser() *domain.User {
	user, err := domain.NewExternalUser("jdoe", "jdoe@example.com", "Jane", "Doe", "placeholder-hash")
	if err != nil {
		panic(err)
	}
	return user
}

func TestAuthUsecase_Authenticate_DirectorySuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)
	attrs := domain.AttributeSet{"mail": {"jdoe@example.com"}}
	identity := directoryIdentity()

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(attrs, nil)
	m.mapper.EXPECT().MapPrincipal(gomock.Any(), "jdoe", attrs).Return(identity, nil)
	m.reconcile.EXPECT().Reconcile(gomock.Any(), identity).Return(reconciledUser(), nil)
	m.tokens.EXPECT().Issue("jdoe").Return("signed-token", nil)
	m.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.users.EXPECT().RecordLogin(gomock.Any(), "jdoe").Return(nil)

	session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "jdoe", session.Username)
	assert.Equal(t, "signed-token", session.Token)
	assert.True(t, session.Active)
}

func TestAuthUsecase_Authenticate_FallsBackToLocal(t *testing.T) {
	tests := []struct {
		name         string
		directoryErr error
	}{
		{
			name:         "principal not found in directory",
			directoryErr: domain.ErrPrincipalNotFound,
		},
		{
			name:         "directory unavailable",
			directoryErr: domain.ErrDirectoryUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, m := newAuthUsecaseForTest(ctrl)

			localSession, err := domain.NewSession("jdoe", "local-token", time.Hour)
			require.NoError(t, err)

			m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(nil, tt.directoryErr)
			m.local.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(localSession, nil)

			session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

			require.NoError(t, err)
			assert.Equal(t, localSession, session)
		})
	}
}

func TestAuthUsecase_Authenticate_LocalFallbackErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "wrong").Return(nil, domain.ErrPrincipalNotFound)
	m.local.EXPECT().Authenticate(gomock.Any(), "jdoe", "wrong").Return(nil, domain.ErrInvalidCredentials)

	session, err := uc.Authenticate(context.Background(), "jdoe", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, session)
}

func TestAuthUsecase_Authenticate_RejectedCredentialNeverFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)

	// No expectation on the local authenticator: calling it here would
	// fail the test.
	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "wrong").Return(nil, domain.ErrInvalidCredentials)

	session, err := uc.Authenticate(context.Background(), "jdoe", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Nil(t, session)
}

func TestAuthUsecase_Authenticate_UnexpectedDirectoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(nil, errors.New("protocol violation"))

	session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

	assert.True(t, domain.IsAuthSystemError(err))
	assert.Nil(t, session)
}

func TestAuthUsecase_Authenticate_UnusableIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)
	attrs := domain.AttributeSet{"uid": {"jdoe"}}

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(attrs, nil)
	m.mapper.EXPECT().MapPrincipal(gomock.Any(), "jdoe", attrs).Return(nil, domain.ErrIdentityUnusable)

	session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

	assert.True(t, domain.IsAuthSystemError(err))
	assert.ErrorIs(t, err, domain.ErrIdentityUnusable)
	assert.Nil(t, session)
}

func TestAuthUsecase_Authenticate_ReconcileFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)
	attrs := domain.AttributeSet{"mail": {"jdoe@example.com"}}
	identity := directoryIdentity()
	reconcileErr := domain.NewAuthSystemError("error checking user jdoe in local store", errors.New("connection refused"))

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(attrs, nil)
	m.mapper.EXPECT().MapPrincipal(gomock.Any(), "jdoe", attrs).Return(identity, nil)
	m.reconcile.EXPECT().Reconcile(gomock.Any(), identity).Return(nil, reconcileErr)

	session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

	assert.Equal(t, reconcileErr, err)
	assert.Nil(t, session)
}

func TestAuthUsecase_Authenticate_SessionStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)
	attrs := domain.AttributeSet{"mail": {"jdoe@example.com"}}
	identity := directoryIdentity()

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(attrs, nil)
	m.mapper.EXPECT().MapPrincipal(gomock.Any(), "jdoe", attrs).Return(identity, nil)
	m.reconcile.EXPECT().Reconcile(gomock.Any(), identity).Return(reconciledUser(), nil)
	m.tokens.EXPECT().Issue("jdoe").Return("signed-token", nil)
	m.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

	session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

	assert.True(t, domain.IsAuthSystemError(err))
	assert.Nil(t, session)
}

func TestAuthUsecase_Authenticate_LoginBookkeepingIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc, m := newAuthUsecaseForTest(ctrl)
	attrs := domain.AttributeSet{"mail": {"jdoe@example.com"}}
	identity := directoryIdentity()

	m.directory.EXPECT().Authenticate(gomock.Any(), "jdoe", "secret").Return(attrs, nil)
	m.mapper.EXPECT().MapPrincipal(gomock.Any(), "jdoe", attrs).Return(identity, nil)
	m.reconcile.EXPECT().Reconcile(gomock.Any(), identity).Return(reconciledUser(), nil)
	m.tokens.EXPECT().Issue("jdoe").Return("signed-token", nil)
	m.sessions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	m.users.EXPECT().RecordLogin(gomock.Any(), "jdoe").Return(domain.ErrUserNotFound)

	session, err := uc.Authenticate(context.Background(), "jdoe", "secret")

	require.NoError(t, err)
	require.NotNil(t, session)
}

func TestAuthUsecase_ValidateToken(t *testing.T) {
	validSession := func(t *testing.T) *domain.Session {
		session, err := domain.NewSession("jdoe", "token-1", time.Hour)
		require.NoError(t, err)
		return session
	}

	tests := []struct {
		name      string
		setupMock func(*testing.T, *authMocks)
		wantErr   error
		checkFn   func(*testing.T, *domain.SessionContext)
	}{
		{
			name: "valid session with user email",
			setupMock: func(t *testing.T, m *authMocks) {
				session := validSession(t)
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().GetByToken(gomock.Any(), "token-1").Return(session, nil)
				m.users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(reconciledUser(), nil)
			},
			checkFn: func(t *testing.T, sc *domain.SessionContext) {
				assert.Equal(t, "jdoe", sc.Username)
				assert.Equal(t, "jdoe@example.com", sc.Email)
				assert.True(t, sc.IsActive)
			},
		},
		{
			name: "user lookup failure leaves email empty",
			setupMock: func(t *testing.T, m *authMocks) {
				session := validSession(t)
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().GetByToken(gomock.Any(), "token-1").Return(session, nil)
				m.users.EXPECT().GetByUsername(gomock.Any(), "jdoe").Return(nil, domain.ErrUserNotFound)
			},
			checkFn: func(t *testing.T, sc *domain.SessionContext) {
				assert.Equal(t, "jdoe", sc.Username)
				assert.Empty(t, sc.Email)
			},
		},
		{
			name: "token verification fails",
			setupMock: func(t *testing.T, m *authMocks) {
				m.tokens.EXPECT().Verify("token-1").Return("", domain.ErrInvalidToken)
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name: "session row missing",
			setupMock: func(t *testing.T, m *authMocks) {
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().GetByToken(gomock.Any(), "token-1").Return(nil, domain.ErrSessionNotFound)
			},
			wantErr: domain.ErrSessionNotFound,
		},
		{
			name: "expired session",
			setupMock: func(t *testing.T, m *authMocks) {
				session := validSession(t)
				session.ExpiresAt = time.Now().Add(-time.Minute)
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().GetByToken(gomock.Any(), "token-1").Return(session, nil)
			},
			wantErr: domain.ErrSessionExpired,
		},
		{
			name: "deactivated session",
			setupMock: func(t *testing.T, m *authMocks) {
				session := validSession(t)
				session.Deactivate()
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().GetByToken(gomock.Any(), "token-1").Return(session, nil)
			},
			wantErr: domain.ErrSessionInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, m := newAuthUsecaseForTest(ctrl)
			tt.setupMock(t, m)

			sc, err := uc.ValidateToken(context.Background(), "token-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, sc)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, sc)
			if tt.checkFn != nil {
				tt.checkFn(t, sc)
			}
		})
	}
}

func TestAuthUsecase_Logout(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*authMocks)
		wantErr   error
	}{
		{
			name: "success",
			setupMock: func(m *authMocks) {
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().Deactivate(gomock.Any(), "token-1").Return(nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func(m *authMocks) {
				m.tokens.EXPECT().Verify("token-1").Return("", domain.ErrInvalidToken)
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name: "session already gone",
			setupMock: func(m *authMocks) {
				m.tokens.EXPECT().Verify("token-1").Return("jdoe", nil)
				m.sessions.EXPECT().Deactivate(gomock.Any(), "token-1").Return(domain.ErrSessionNotFound)
			},
			wantErr: domain.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uc, m := newAuthUsecaseForTest(ctrl)
			tt.setupMock(m)

			err := uc.Logout(context.Background(), "token-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
