package domain

// AttributeSet is the read-only view of one principal's directory entry:
// attribute name to one-or-many string values. It is scoped to a single
// authentication attempt and never cached across attempts.
type AttributeSet map[string][]string

// First returns the first value of the named attribute, or "" when the
// attribute is absent or empty.
func (a AttributeSet) First(name string) string {
	values := a[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Values returns all values of the named attribute. A nil result means the
// attribute is absent.
func (a AttributeSet) Values(name string) []string {
	return a[name]
}

// Has reports whether the named attribute is present with at least one value.
func (a AttributeSet) Has(name string) bool {
	return len(a[name]) > 0
}

// SiteGroupRef is the result of decoding one site attribute value: a site
// key and, when the pattern captured one, a group name embedded in the same
// value. Empty fields mean absent; a zero SiteGroupRef is the no-match
// signal.
type SiteGroupRef struct {
	SiteKey   string
	GroupName string
}

// IsZero reports whether the decode matched nothing.
func (r SiteGroupRef) IsZero() bool {
	return r.SiteKey == "" && r.GroupName == ""
}

// HasGroup reports whether a group name was embedded in the attribute value.
func (r SiteGroupRef) HasGroup() bool {
	return r.GroupName != ""
}

// GroupMembership is one site-scoped group a principal belongs to. SiteKey
// and GroupName together identify the membership; duplicates are permitted
// here and collapse during reconciliation.
type GroupMembership struct {
	SiteKey     string `json:"site_key"`
	GroupName   string `json:"group_name"`
	Description string `json:"description"`
}

// ExternalGroupDescription is the fixed description applied to groups the
// bridge creates on behalf of the directory.
const ExternalGroupDescription = "Externally managed group"

// DirectoryIdentity is the normalized view of an authenticated principal,
// built fresh per authentication attempt and discarded after reconciliation.
type DirectoryIdentity struct {
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name,omitempty"`
	LastName  string            `json:"last_name,omitempty"`
	Active    bool              `json:"active"`
	Groups    []GroupMembership `json:"groups"`
}

// NewDirectoryIdentity creates an identity shell for the given principal.
// Directory-sourced identities are always active.
func NewDirectoryIdentity(username string) *DirectoryIdentity {
	return &DirectoryIdentity{
		Username: username,
		Active:   true,
		Groups:   []GroupMembership{},
	}
}

// AddGroup appends a site-scoped membership in processing order.
func (i *DirectoryIdentity) AddGroup(siteKey, groupName string) {
	i.Groups = append(i.Groups, GroupMembership{
		SiteKey:     siteKey,
		GroupName:   groupName,
		Description: ExternalGroupDescription,
	})
}
