package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrganizerProfileComplete(t *testing.T) {
	full := OrganizerProfile{
		Name:    "Acme Events",
		Address: "Salmiya, Block 2",
		Image:   "https://cdn.example/acme.png",
		Phone:   "+965 555 0100",
		Email:   "hello@acme.example",
	}

	tests := []struct {
		name    string
		mutate  func(*OrganizerProfile)
		want    bool
		nilProf bool
	}{
		{name: "all required fields", mutate: func(*OrganizerProfile) {}, want: true},
		{name: "nil profile", nilProf: true, want: false},
		{name: "missing name", mutate: func(p *OrganizerProfile) { p.Name = "" }, want: false},
		{name: "missing address", mutate: func(p *OrganizerProfile) { p.Address = "" }, want: false},
		{name: "missing image", mutate: func(p *OrganizerProfile) { p.Image = "" }, want: false},
		{name: "missing phone", mutate: func(p *OrganizerProfile) { p.Phone = "" }, want: false},
		{name: "missing email", mutate: func(p *OrganizerProfile) { p.Email = "" }, want: false},
		{
			// Bio and website never affect completeness.
			name:   "bio and website empty",
			mutate: func(p *OrganizerProfile) { p.Bio = ""; p.Website = "" },
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.nilProf {
				var p *OrganizerProfile
				assert.False(t, p.Complete())
				return
			}
			p := full
			tt.mutate(&p)
			assert.Equal(t, tt.want, p.Complete())
		})
	}
}

func TestCategoryMatches(t *testing.T) {
	cat := Category{ID: "cat-1", Label: "Live Music", Name: "music", Key: "mus"}

	assert.True(t, cat.Matches("cat-1"))
	assert.True(t, cat.Matches("mus"))
	assert.True(t, cat.Matches("music"))
	assert.False(t, cat.Matches("Music")) // name match is exact
	assert.False(t, cat.Matches(""))
	assert.False(t, cat.Matches("other"))
}

func TestCategoryDisplayName(t *testing.T) {
	assert.Equal(t, "Live Music", (&Category{Label: "Live Music", Name: "music"}).DisplayName())
	assert.Equal(t, "music", (&Category{Name: "music"}).DisplayName())
	assert.Equal(t, "Other", (&Category{}).DisplayName())
}
