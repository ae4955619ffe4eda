// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package portal

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name      string
		diagnosis string
		keywords  string
		want      string
	}{
		{"diagnosis wins", "Glioblastoma", "vaccine", "Glioblastoma"},
		{"other falls back to keywords", "Other", "vaccine, proton", "vaccine, proton"},
		{"empty falls back to keywords", "", "vaccine", "vaccine"},
		{"broad default", "", "", "brain tumour"},
		{"other with no keywords", "Other", "", "brain tumour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Query(tt.diagnosis, tt.keywords))
		})
	}
}

// parseQuery asserts the URL targets base and returns its query values.
func parseQuery(t *testing.T, raw, base string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, base, u.Scheme+"://"+u.Host+u.Path)
	return u.Query()
}

func TestNIHRURL(t *testing.T) {
	v := parseQuery(t, NIHRURL("diffuse midline glioma", "London"), nihrBase)
	assert.Equal(t, "diffuse midline glioma", v.Get("query"))
	assert.Equal(t, "London", v.Get("location"))

	v = parseQuery(t, NIHRURL("glioma", ""), nihrBase)
	assert.Equal(t, "glioma", v.Get("query"))
	assert.False(t, v.Has("location"))
}

func TestISRCTNURL(t *testing.T) {
	v := parseQuery(t, ISRCTNURL("brain tumour"), isrctnBase)
	assert.Equal(t, "brain tumour", v.Get("q"))
	assert.Equal(t, "United Kingdom", v.Get("countries"))
}

func TestCRUKURL(t *testing.T) {
	v := parseQuery(t, CRUKURL("meningioma & friends"), crukBase)
	assert.Equal(t, "meningioma & friends", v.Get("q"))
}
