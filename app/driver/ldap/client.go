package ldap

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/go-ldap/ldap/v3"

	"auth-bridge/app/config"
	"auth-bridge/app/domain"
)

// Conn abstracts the subset of the go-ldap connection the client needs,
// mostly so tests can substitute a fake. *ldap.Conn satisfies it.
type Conn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

var _ Conn = (*ldap.Conn)(nil)

// Dialer opens a directory connection. Injectable for tests; the default
// dials the configured URL with the configured timeout.
type Dialer func(ctx context.Context, url string) (Conn, error)

// Client authenticates principals against an LDAP directory. Implements
// port.DirectoryAuthenticator: search for the principal's entry, bind it
// with the supplied credential, and return the entry's attributes.
//
// Each authentication attempt uses a fresh connection; there is no shared
// mutable state between attempts.
type Client struct {
	cfg    config.LDAPConfig
	dial   Dialer
	logger *slog.Logger
}

// NewClient creates a new LDAP client.
func NewClient(cfg config.LDAPConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		dial:   defaultDialer(cfg),
		logger: logger.With("component", "ldap_client"),
	}
}

// NewClientWithDialer creates a client with a custom dialer.
func NewClientWithDialer(cfg config.LDAPConfig, dial Dialer, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		dial:   dial,
		logger: logger.With("component", "ldap_client"),
	}
}

func defaultDialer(cfg config.LDAPConfig) Dialer {
	return func(ctx context.Context, url string) (Conn, error) {
		conn, err := ldap.DialURL(url, ldap.DialWithDialer(&net.Dialer{Timeout: cfg.Timeout}))
		if err != nil {
			return nil, err
		}
		conn.SetTimeout(cfg.Timeout)
		return conn, nil
	}
}

// Authenticate verifies the credential and returns the principal's
// attributes. Failures classify into the domain sentinels:
// ErrPrincipalNotFound, ErrDirectoryUnavailable and ErrInvalidCredentials.
func (c *Client) Authenticate(ctx context.Context, username, password string) (domain.AttributeSet, error) {
	// An empty password would be an unauthenticated bind, which most
	// servers report as success. Reject it before touching the directory.
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	conn, err := c.dial(ctx, c.cfg.URL)
	if err != nil {
		c.logger.Warn("failed to connect to directory", "url", c.cfg.URL, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}
	defer conn.Close()

	if c.cfg.BindDN != "" {
		if err := conn.Bind(c.cfg.BindDN, c.cfg.BindPassword); err != nil {
			if isUnavailable(err) {
				return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
			}
			// A rejected service bind is a deployment problem, not the
			// principal's credential failing.
			return nil, fmt.Errorf("service bind failed: %w", err)
		}
	}

	entry, err := c.findPrincipal(conn, username)
	if err != nil {
		return nil, err
	}

	if err := conn.Bind(entry.DN, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
		}
		return nil, fmt.Errorf("bind failed for %s: %w", entry.DN, err)
	}

	attrs := make(domain.AttributeSet, len(entry.Attributes))
	for _, attr := range entry.Attributes {
		attrs[attr.Name] = attr.Values
	}

	c.logger.Debug("directory authentication succeeded",
		"username", username,
		"dn", entry.DN,
		"attributes", len(attrs))

	return attrs, nil
}

// findPrincipal searches for exactly one entry matching the configured
// username attribute.
func (c *Client) findPrincipal(conn Conn, username string) (*ldap.Entry, error) {
	filter := fmt.Sprintf("(%s=%s)", c.cfg.UsernameAttribute, ldap.EscapeFilter(username))

	request := ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, int(c.cfg.Timeout.Seconds()), false,
		filter,
		c.principalAttributes(),
		nil,
	)

	result, err := conn.Search(request)
	if err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultNoSuchObject) {
			return nil, domain.ErrPrincipalNotFound
		}
		if isUnavailable(err) {
			return nil, fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
		}
		return nil, fmt.Errorf("directory search failed: %w", err)
	}

	switch len(result.Entries) {
	case 0:
		return nil, domain.ErrPrincipalNotFound
	case 1:
		return result.Entries[0], nil
	default:
		return nil, fmt.Errorf("directory search for %s returned %d entries, expected 1", username, len(result.Entries))
	}
}

func (c *Client) principalAttributes() []string {
	return []string{
		c.cfg.UsernameAttribute,
		c.cfg.EmailAttribute,
		c.cfg.FirstNameAttribute,
		c.cfg.LastNameAttribute,
		c.cfg.SiteIDAttribute,
		c.cfg.GroupNameAttribute,
	}
}
