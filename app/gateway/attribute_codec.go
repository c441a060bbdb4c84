package gateway

import (
	"fmt"
	"regexp"

	"auth-bridge/app/config"
	"auth-bridge/app/domain"
)

// AttributeCodec decodes raw directory attribute values into structured
// identifiers using the configured regular expressions. Patterns are
// compiled once at construction with full-string anchoring; a malformed
// pattern is a configuration error and fails loudly at startup, never at
// decode time.
type AttributeCodec struct {
	sitePattern    *regexp.Regexp
	siteIndex      int
	siteGroupIndex int

	groupPattern *regexp.Regexp
	groupIndex   int
}

// NewAttributeCodec compiles the configured patterns into a codec.
func NewAttributeCodec(cfg config.LDAPConfig) (*AttributeCodec, error) {
	sitePattern, err := compileFullMatch(cfg.SiteIDRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid site ID regex %q: %w", cfg.SiteIDRegex, err)
	}

	groupPattern, err := compileFullMatch(cfg.GroupNameRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid group name regex %q: %w", cfg.GroupNameRegex, err)
	}

	return &AttributeCodec{
		sitePattern:    sitePattern,
		siteIndex:      cfg.SiteIDMatchIndex,
		siteGroupIndex: cfg.SiteGroupMatchIndex,
		groupPattern:   groupPattern,
		groupIndex:     cfg.GroupNameMatchIndex,
	}, nil
}

// compileFullMatch anchors the pattern so it must match the whole value,
// not a substring of it.
func compileFullMatch(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(`\A(?:` + pattern + `)\z`)
}

// DecodeGroupName matches the value against the group name pattern and
// returns the capture group at the configured index. No match, or an index
// beyond what the pattern can capture, yields "" - callers treat empty as
// nothing to add.
func (c *AttributeCodec) DecodeGroupName(value string) string {
	return decodeGroup(c.groupPattern, value, c.groupIndex)
}

// DecodeSiteRef matches the value against the composite site pattern. On
// match the site key always comes from the configured primary index; the
// embedded group name is populated only when the secondary index is within
// the pattern's capture-group count and that group participated in the
// match. No match yields a zero SiteGroupRef.
func (c *AttributeCodec) DecodeSiteRef(value string) domain.SiteGroupRef {
	match := c.sitePattern.FindStringSubmatchIndex(value)
	if match == nil {
		return domain.SiteGroupRef{}
	}

	siteKey := submatch(value, match, c.siteIndex)
	if siteKey == "" {
		return domain.SiteGroupRef{}
	}

	ref := domain.SiteGroupRef{SiteKey: siteKey}

	if c.siteGroupIndex <= c.sitePattern.NumSubexp() {
		ref.GroupName = submatch(value, match, c.siteGroupIndex)
	}

	return ref
}

func decodeGroup(pattern *regexp.Regexp, value string, index int) string {
	match := pattern.FindStringSubmatchIndex(value)
	if match == nil {
		return ""
	}
	return submatch(value, match, index)
}

// submatch extracts capture group `index` from FindStringSubmatchIndex
// output. The index is a configuration-supplied integer, so its validity is
// checked against the matched pattern rather than assumed; a group that did
// not participate in the match (offset -1) reads as absent.
func submatch(value string, match []int, index int) string {
	start, end := 2*index, 2*index+1
	if end >= len(match) || match[start] < 0 {
		return ""
	}
	return value[match[start]:match[end]]
}
