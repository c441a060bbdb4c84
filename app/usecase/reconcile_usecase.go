package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"auth-bridge/app/domain"
	"auth-bridge/app/port"

	"github.com/google/uuid"
)

// ReconcileUsecase synchronizes a normalized directory identity into the
// local store: create-or-update the user, create-or-get each group, and
// create-or-get each membership. The whole engine is idempotent and
// race-tolerant - concurrent authentications for the same principal are
// expected, and "already exists" on create is success, not failure.
type ReconcileUsecase struct {
	users      port.UserRepository
	groups     port.GroupRepository
	activity   port.ActivityRecorder
	systemSite string
	logger     *slog.Logger
}

// NewReconcileUsecase creates a new ReconcileUsecase instance
func NewReconcileUsecase(users port.UserRepository, groups port.GroupRepository, activity port.ActivityRecorder, systemSite string, logger *slog.Logger) *ReconcileUsecase {
	return &ReconcileUsecase{
		users:      users,
		groups:     groups,
		activity:   activity,
		systemSite: systemSite,
		logger:     logger.With("component", "reconcile_usecase"),
	}
}

// Reconcile upserts the user record and its group memberships.
//
// A failure on the user record itself is fatal and wrapped into a
// system-level error. Membership upserts are isolated: one failing
// membership is logged and skipped, and the user is still returned as
// session-eligible.
func (uc *ReconcileUsecase) Reconcile(ctx context.Context, identity *domain.DirectoryIdentity) (*domain.User, error) {
	exists, err := uc.users.Exists(ctx, identity.Username)
	if err != nil {
		return nil, domain.NewAuthSystemError(
			fmt.Sprintf("error checking user %s in local store", identity.Username), err)
	}

	if exists {
		if err := uc.updateUser(ctx, identity); err != nil {
			return nil, err
		}
	} else {
		if err := uc.createUser(ctx, identity); err != nil {
			return nil, err
		}
	}

	for _, membership := range identity.Groups {
		if err := uc.upsertMembership(ctx, identity.Username, membership); err != nil {
			uc.logger.Error("failed to upsert user group data from directory",
				"username", identity.Username,
				"site", membership.SiteKey,
				"group", membership.GroupName,
				"error", err)
		}
	}

	user, err := uc.users.GetByUsername(ctx, identity.Username)
	if err != nil {
		return nil, domain.NewAuthSystemError(
			fmt.Sprintf("error loading reconciled user %s", identity.Username), err)
	}

	return user, nil
}

// updateUser refreshes profile fields from the directory. The update is
// always issued; an audit event fires only when the repository reports an
// actual change.
func (uc *ReconcileUsecase) updateUser(ctx context.Context, identity *domain.DirectoryIdentity) error {
	changed, err := uc.users.Update(ctx, domain.UserUpdate{
		Username:          identity.Username,
		FirstName:         identity.FirstName,
		LastName:          identity.LastName,
		Email:             identity.Email,
		ExternallyManaged: true,
	})
	if err != nil {
		uc.logger.Error("error updating user with data from external authentication provider",
			"username", identity.Username, "error", err)
		return domain.NewAuthSystemError(
			fmt.Sprintf("error updating user %s with data from external authentication provider", identity.Username), err)
	}

	if changed {
		uc.recordUserActivity(ctx, identity.Username, domain.ActivityTypeUpdated)
	}

	return nil
}

// createUser creates an externally managed user. The directory remains the
// credential of record, so the local credential is a generated placeholder.
func (uc *ReconcileUsecase) createUser(ctx context.Context, identity *domain.DirectoryIdentity) error {
	placeholder, err := generatePlaceholderCredential()
	if err != nil {
		return domain.NewAuthSystemError("failed to generate placeholder credential", err)
	}

	user, err := domain.NewExternalUser(identity.Username, identity.Email, identity.FirstName, identity.LastName, placeholder)
	if err != nil {
		return domain.NewAuthSystemError(
			fmt.Sprintf("error adding user %s from external authentication provider", identity.Username), err)
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			// Lost a create race to a concurrent authentication of the
			// same principal; the record exists, which is all we need.
			uc.logger.Info("user created concurrently, continuing", "username", identity.Username)
			return nil
		}
		uc.logger.Error("error adding user from external authentication provider",
			"username", identity.Username, "error", err)
		return domain.NewAuthSystemError(
			fmt.Sprintf("error adding user %s from external authentication provider", identity.Username), err)
	}

	uc.recordUserActivity(ctx, identity.Username, domain.ActivityTypeCreated)
	return nil
}

// upsertMembership ensures the group exists and the user is a member of it.
// "Already exists" outcomes are normal under concurrent authentication.
func (uc *ReconcileUsecase) upsertMembership(ctx context.Context, username string, membership domain.GroupMembership) error {
	exists, err := uc.groups.Exists(ctx, membership.SiteKey, membership.GroupName)
	if err != nil {
		return err
	}

	if !exists {
		group, err := domain.NewExternalGroup(membership.GroupName, membership.Description, membership.SiteKey)
		if err != nil {
			return err
		}
		if err := uc.groups.Create(ctx, group); err != nil && !errors.Is(err, domain.ErrGroupAlreadyExists) {
			return err
		}
	}

	inGroup, err := uc.groups.UserInGroup(ctx, membership.SiteKey, membership.GroupName, username)
	if err != nil {
		return err
	}

	if !inGroup {
		if err := uc.groups.AddUser(ctx, membership.SiteKey, membership.GroupName, username); err != nil {
			if errors.Is(err, domain.ErrAlreadyMember) {
				return nil
			}
			return err
		}

		uc.activity.Record(ctx, domain.NewActivity(
			membership.SiteKey,
			"LDAP",
			username+" > "+membership.GroupName,
			domain.ActivityTypeAddUserToGroup,
			domain.ActivitySourceAPI,
			map[string]string{"content_type": domain.ContentTypeUser},
		))
	}

	return nil
}

func (uc *ReconcileUsecase) recordUserActivity(ctx context.Context, username string, activityType domain.ActivityType) {
	uc.activity.Record(ctx, domain.NewActivity(
		uc.systemSite,
		username,
		username,
		activityType,
		domain.ActivitySourceAPI,
		map[string]string{"content_type": domain.ContentTypeUser},
	))
}

// generatePlaceholderCredential returns a bcrypt hash of a random secret.
// The value is never disclosed, so a directory-backed account cannot be
// used through the local password path.
func generatePlaceholderCredential() (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
