package cms_test

import (
	"testing"

	"github.com/code-wheel/jsonapi-frontend-client/pkg/cms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	base := "https://cms.example.com"

	tests := []struct {
		name             string
		input            string
		allowCrossOrigin bool
		want             string
		wantOriginErr    bool
		wantSchemeErr    bool
	}{
		{
			name:  "relative path",
			input: "/jsonapi/node/article",
			want:  "https://cms.example.com/jsonapi/node/article",
		},
		{
			name:  "absolute same origin",
			input: "https://cms.example.com/jsonapi/routes?page[cursor]=abc",
			want:  "https://cms.example.com/jsonapi/routes?page[cursor]=abc",
		},
		{
			name:  "default port matches bare host",
			input: "https://cms.example.com:443/jsonapi/routes",
			want:  "https://cms.example.com:443/jsonapi/routes",
		},
		{
			name:          "different host",
			input:         "https://evil.example.net/jsonapi/routes",
			wantOriginErr: true,
		},
		{
			name:          "different scheme",
			input:         "http://cms.example.com/jsonapi/routes",
			wantOriginErr: true,
		},
		{
			name:          "different port",
			input:         "https://cms.example.com:8443/jsonapi/routes",
			wantOriginErr: true,
		},
		{
			name:             "cross origin allowed",
			input:            "https://files.example.net/media/1.jpg",
			allowCrossOrigin: true,
			want:             "https://files.example.net/media/1.jpg",
		},
		{
			name:          "ftp scheme rejected",
			input:         "ftp://cms.example.com/file",
			wantSchemeErr: true,
		},
		{
			name:             "javascript scheme rejected even cross-origin",
			input:            "javascript:alert(1)",
			allowCrossOrigin: true,
			wantSchemeErr:    true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			resolved, err := cms.ResolveURL(testCase.input, base, testCase.allowCrossOrigin)

			switch {
			case testCase.wantOriginErr:
				require.Error(t, err)
				assert.True(t, cms.IsOriginMismatch(err))
				assert.Nil(t, resolved)
			case testCase.wantSchemeErr:
				require.Error(t, err)
				assert.True(t, cms.IsUnsupportedScheme(err))
				assert.Nil(t, resolved)
			default:
				require.NoError(t, err)
				assert.Equal(t, testCase.want, resolved.String())
			}
		})
	}
}

func TestResolveURLInvalidBase(t *testing.T) {
	_, err := cms.ResolveURL("/path", "not a url", false)
	require.ErrorIs(t, err, cms.ErrInvalidBaseURL)

	_, err = cms.ResolveURL("/path", "ftp://cms.example.com", false)
	require.ErrorIs(t, err, cms.ErrInvalidBaseURL)
}

func TestResolveURLHTTPDefaultPort(t *testing.T) {
	resolved, err := cms.ResolveURL("http://cms.example.com:80/data", "http://cms.example.com", false)
	require.NoError(t, err)
	assert.Equal(t, "/data", resolved.Path)
}
