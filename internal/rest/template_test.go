package rest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL_SubstitutesAllPlaceholders(t *testing.T) {
	got, err := ResolveURL(
		"https://classroom.googleapis.com/v1/courses/{courseId}/announcements/{id}",
		map[string]string{"courseId": "abc", "id": "123"},
	)
	require.NoError(t, err)
	assert.Equal(t, "https://classroom.googleapis.com/v1/courses/abc/announcements/123", got)
}

func TestResolveURL_KeepsCustomMethodSuffix(t *testing.T) {
	got, err := ResolveURL(
		"/courses/{courseId}/announcements/{id}:modifyAssignees",
		map[string]string{"courseId": "c1", "id": "a1"},
	)
	require.NoError(t, err)
	assert.Equal(t, "/courses/c1/announcements/a1:modifyAssignees", got)
}

func TestResolveURL_MissingField(t *testing.T) {
	_, err := ResolveURL("/courses/{courseId}/announcements/{id}", map[string]string{"courseId": "abc"})
	require.Error(t, err)

	var missing *MissingPathParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "id", missing.Name)
	assert.True(t, IsMissingPathParameter(err))
	assert.Equal(t, ErrCodeMissingPathParameter, Code(err))
}

func TestResolveURL_EmptyValueIsMissing(t *testing.T) {
	_, err := ResolveURL("/courses/{courseId}", map[string]string{"courseId": ""})
	require.Error(t, err)
	assert.True(t, IsMissingPathParameter(err))
}

func TestResolveURL_ReportsFirstMissingPlaceholder(t *testing.T) {
	_, err := ResolveURL("/courses/{courseId}/courseWork/{courseWorkId}", nil)

	var missing *MissingPathParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "courseId", missing.Name)
}

func TestResolveURL_EscapesValues(t *testing.T) {
	got, err := ResolveURL("/courses/{courseId}", map[string]string{"courseId": "a b/c"})
	require.NoError(t, err)
	assert.Equal(t, "/courses/a%20b%2Fc", got)
}

func TestResolveURL_IgnoresExtraValues(t *testing.T) {
	got, err := ResolveURL("/courses", map[string]string{"courseId": "unused"})
	require.NoError(t, err)
	assert.Equal(t, "/courses", got)
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		template string
		want     []string
	}{
		{"/courses", []string{}},
		{"/courses/{id}", []string{"id"}},
		{"/courses/{courseId}/courseWork/{courseWorkId}/studentSubmissions/{id}", []string{"courseId", "courseWorkId", "id"}},
		{"/courses/{courseId}/announcements/{id}:modifyAssignees", []string{"courseId", "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, Placeholders(tt.template))
		})
	}
}

func TestJoinURL(t *testing.T) {
	assert.Equal(t, "https://x/v1/courses", joinURL("https://x/v1", "/courses"))
	assert.Equal(t, "https://x/v1/courses", joinURL("https://x/v1/", "courses"))
	assert.Equal(t, "/courses", joinURL("", "/courses"))
}

func TestValues_OmitsAbsentFields(t *testing.T) {
	zero := 0
	size := 20
	v := Values{}
	v.Set("orderBy", "")
	v.SetString("filter", nil)
	v.SetInt("pageSize", nil)
	SetList(v, "states", []string{})
	assert.Empty(t, v)

	empty := ""
	v.SetString("filter", &empty)
	assert.Equal(t, Values{"filter": ""}, v)
	delete(v, "filter")

	v.Set("orderBy", "updateTime desc")
	v.SetInt("pageSize", &size)
	v.SetInt("offset", &zero)
	SetList(v, "states", []string{"PUBLISHED", "DRAFT"})

	assert.Equal(t, Values{
		"orderBy":  "updateTime desc",
		"pageSize": "20",
		"offset":   "0",
		"states":   "PUBLISHED,DRAFT",
	}, v)
}

func TestCapability_Method(t *testing.T) {
	tests := map[Capability]string{
		CapCreate:          "POST",
		CapDelete:          "DELETE",
		CapGet:             "GET",
		CapList:            "GET",
		CapPatch:           "PATCH",
		CapUpdate:          "PUT",
		CapModifyAssignees: "POST",
	}
	for capability, method := range tests {
		assert.Equal(t, method, capability.Method(), string(capability))
	}
}
