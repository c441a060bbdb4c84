package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-bridge/app/config"
	"auth-bridge/app/domain"
)

func codecConfig(siteRegex string, siteIdx, siteGroupIdx int, groupRegex string, groupIdx int) config.LDAPConfig {
	return config.LDAPConfig{
		SiteIDRegex:         siteRegex,
		SiteIDMatchIndex:    siteIdx,
		SiteGroupMatchIndex: siteGroupIdx,
		GroupNameRegex:      groupRegex,
		GroupNameMatchIndex: groupIdx,
	}
}

func TestNewAttributeCodec(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LDAPConfig
		wantErr bool
	}{
		{
			name:    "valid patterns",
			cfg:     codecConfig(`([^:]+)(?::(.+))?`, 1, 2, `(.+)`, 1),
			wantErr: false,
		},
		{
			name:    "invalid site pattern",
			cfg:     codecConfig(`([a-z`, 1, 2, `(.+)`, 1),
			wantErr: true,
		},
		{
			name:    "invalid group pattern",
			cfg:     codecConfig(`(.+)`, 1, 2, `(?P<bad`, 1),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewAttributeCodec(tt.cfg)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, codec)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, codec)
			}
		})
	}
}

func TestAttributeCodec_DecodeSiteRef(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LDAPConfig
		value string
		want  domain.SiteGroupRef
	}{
		{
			name:  "composite value with embedded group",
			cfg:   codecConfig(`([^:]+):([^:]+)`, 1, 2, `(.+)`, 1),
			value: "mysite:editors",
			want:  domain.SiteGroupRef{SiteKey: "mysite", GroupName: "editors"},
		},
		{
			name:  "optional group absent",
			cfg:   codecConfig(`([^:]+)(?::(.+))?`, 1, 2, `(.+)`, 1),
			value: "mysite",
			want:  domain.SiteGroupRef{SiteKey: "mysite"},
		},
		{
			name:  "optional group present",
			cfg:   codecConfig(`([^:]+)(?::(.+))?`, 1, 2, `(.+)`, 1),
			value: "mysite:reviewers",
			want:  domain.SiteGroupRef{SiteKey: "mysite", GroupName: "reviewers"},
		},
		{
			name:  "simple site key without group capture",
			cfg:   codecConfig(`(.+)`, 1, 2, `(.+)`, 1),
			value: "default",
			want:  domain.SiteGroupRef{SiteKey: "default"},
		},
		{
			name:  "no match yields zero ref",
			cfg:   codecConfig(`site_([a-z]+)`, 1, 2, `(.+)`, 1),
			value: "unrelated-value",
			want:  domain.SiteGroupRef{},
		},
		{
			name:  "partial match rejected by anchoring",
			cfg:   codecConfig(`site_([a-z]+)`, 1, 2, `(.+)`, 1),
			value: "prefix site_demo suffix",
			want:  domain.SiteGroupRef{},
		},
		{
			name:  "secondary index beyond capture count is ignored",
			cfg:   codecConfig(`([^:]+)`, 1, 5, `(.+)`, 1),
			value: "mysite",
			want:  domain.SiteGroupRef{SiteKey: "mysite"},
		},
		{
			name:  "primary index beyond capture count yields zero ref",
			cfg:   codecConfig(`(.+)`, 3, 2, `(.+)`, 1),
			value: "mysite",
			want:  domain.SiteGroupRef{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewAttributeCodec(tt.cfg)
			require.NoError(t, err)

			got := codec.DecodeSiteRef(tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAttributeCodec_DecodeGroupName(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LDAPConfig
		value string
		want  string
	}{
		{
			name:  "whole value captured",
			cfg:   codecConfig(`(.+)`, 1, 2, `(.+)`, 1),
			value: "site_admin",
			want:  "site_admin",
		},
		{
			name:  "capture from structured value",
			cfg:   codecConfig(`(.+)`, 1, 2, `CN=([^,]+),.*`, 1),
			value: "CN=editors,OU=groups,DC=example,DC=com",
			want:  "editors",
		},
		{
			name:  "no match yields empty",
			cfg:   codecConfig(`(.+)`, 1, 2, `group_([a-z]+)`, 1),
			value: "something-else",
			want:  "",
		},
		{
			name:  "partial match rejected by anchoring",
			cfg:   codecConfig(`(.+)`, 1, 2, `group_([a-z]+)`, 1),
			value: "xx group_editors yy",
			want:  "",
		},
		{
			name:  "index beyond capture count yields empty",
			cfg:   codecConfig(`(.+)`, 1, 2, `(.+)`, 4),
			value: "editors",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewAttributeCodec(tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, tt.want, codec.DecodeGroupName(tt.value))
		})
	}
}
