package gateway

import (
	"context"
	"log/slog"

	"auth-bridge/app/config"
	"auth-bridge/app/domain"
	"auth-bridge/app/port"
)

// IdentityMapper builds a normalized identity from the raw attributes of an
// authenticated principal. It acts as an anti-corruption layer between the
// directory's attribute model and the domain: attribute names, decode
// patterns and the default site all come from configuration, and the mapper
// never touches the directory itself.
type IdentityMapper struct {
	codec   *AttributeCodec
	tenants port.TenantRepository
	cfg     config.LDAPConfig
	logger  *slog.Logger
}

// NewIdentityMapper creates a new identity mapper.
func NewIdentityMapper(codec *AttributeCodec, tenants port.TenantRepository, cfg config.LDAPConfig, logger *slog.Logger) *IdentityMapper {
	return &IdentityMapper{
		codec:   codec,
		tenants: tenants,
		cfg:     cfg,
		logger:  logger.With("component", "identity_mapper"),
	}
}

// MapPrincipal maps directory attributes to a DirectoryIdentity.
//
// The email attribute is mandatory: without it no identity is produced and
// the caller must not persist a partial record. First and last name are
// independently optional. Site attribute values are decoded one by one; an
// unresolvable site key skips that value only. When the site attribute is
// absent entirely, memberships are resolved against the configured default
// site instead.
func (m *IdentityMapper) MapPrincipal(ctx context.Context, username string, attrs domain.AttributeSet) (*domain.DirectoryIdentity, error) {
	identity := domain.NewDirectoryIdentity(username)

	email := attrs.First(m.cfg.EmailAttribute)
	if email == "" {
		m.logger.Error("no directory attribute found, user will not be imported",
			"attribute", m.cfg.EmailAttribute,
			"username", username)
		return nil, domain.ErrIdentityUnusable
	}
	identity.Email = email

	if firstName := attrs.First(m.cfg.FirstNameAttribute); firstName != "" {
		identity.FirstName = firstName
	} else {
		m.logger.Warn("no directory attribute found",
			"attribute", m.cfg.FirstNameAttribute,
			"username", username)
	}

	if lastName := attrs.First(m.cfg.LastNameAttribute); lastName != "" {
		identity.LastName = lastName
	} else {
		m.logger.Warn("no directory attribute found",
			"attribute", m.cfg.LastNameAttribute,
			"username", username)
	}

	if attrs.Has(m.cfg.SiteIDAttribute) {
		for _, rawValue := range attrs.Values(m.cfg.SiteIDAttribute) {
			if rawValue == "" {
				continue
			}

			ref := m.codec.DecodeSiteRef(rawValue)
			if ref.IsZero() {
				continue
			}

			tenant, err := m.tenants.GetBySlug(ctx, ref.SiteKey)
			if err != nil {
				m.logger.Warn("no site found for ID", "site_id", ref.SiteKey, "error", err)
				continue
			}

			// Embedded site-specific group first, then the separate
			// group name attribute scoped to the same site
			if ref.HasGroup() {
				identity.AddGroup(tenant.Slug, ref.GroupName)
			}

			m.addGroupsFromAttribute(identity, attrs, tenant)
		}
	} else {
		defaultSiteID := m.cfg.DefaultSiteID

		m.logger.Debug("assigning user to default site",
			"username", username,
			"site_id", defaultSiteID)

		tenant, err := m.tenants.GetBySlug(ctx, defaultSiteID)
		if err != nil {
			m.logger.Warn("no site found for default site ID", "site_id", defaultSiteID, "error", err)
		} else {
			m.addGroupsFromAttribute(identity, attrs, tenant)
		}
	}

	return identity, nil
}

// addGroupsFromAttribute decodes the group name attribute once per resolved
// site, adding one membership per non-empty decoded name.
func (m *IdentityMapper) addGroupsFromAttribute(identity *domain.DirectoryIdentity, attrs domain.AttributeSet, tenant *domain.Tenant) {
	values := attrs.Values(m.cfg.GroupNameAttribute)
	if len(values) == 0 {
		m.logger.Debug("no directory attribute found",
			"attribute", m.cfg.GroupNameAttribute,
			"username", identity.Username)
		return
	}

	for _, rawValue := range values {
		if rawValue == "" {
			continue
		}
		if groupName := m.codec.DecodeGroupName(rawValue); groupName != "" {
			identity.AddGroup(tenant.Slug, groupName)
		}
	}
}
