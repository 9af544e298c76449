package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"eventhub/internal/model"
)

func TestByCategory(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "a", CategoryID: "music"},
		{ID: "2", Title: "b"},
		{ID: "3", Title: "c", CategoryID: "music"},
		{ID: "4", Title: "d", CategoryID: "food"},
		{ID: "5", Title: "e"},
	}

	groups := ByCategory(events)

	assert.Equal(t, []string{"a", "c"}, titles(groups["music"]))
	assert.Equal(t, []string{"d"}, titles(groups["food"]))
	assert.Equal(t, []string{"b", "e"}, titles(groups[OtherBucket]))

	// Every event lands in exactly one group.
	total := 0
	for _, items := range groups {
		total += len(items)
	}
	assert.Equal(t, len(events), total)
}

func TestSectionFor(t *testing.T) {
	groups := map[string][]model.Event{
		"cat-1": {{ID: "1", Title: "by id"}},
		"mus":   {{ID: "2", Title: "by key"}},
	}

	tests := []struct {
		name string
		cat  model.Category
		want []string
	}{
		{
			name: "identity match wins",
			cat:  model.Category{ID: "cat-1", Key: "mus"},
			want: []string{"by id"},
		},
		{
			name: "falls back to short key",
			cat:  model.Category{ID: "cat-9", Key: "mus"},
			want: []string{"by key"},
		},
		{
			name: "no match means skip",
			cat:  model.Category{ID: "cat-9", Key: "art"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := SectionFor(tt.cat, groups)
			if tt.want == nil {
				assert.Nil(t, items)
				return
			}
			assert.Equal(t, tt.want, titles(items))
		})
	}
}

func TestCategoryName(t *testing.T) {
	categories := []model.Category{
		{ID: "cat-1", Label: "Live Music", Name: "music", Key: "mus"},
		{ID: "cat-2", Name: "Food & Drink"},
	}

	assert.Equal(t, "Live Music", CategoryName(categories, "cat-1"))
	assert.Equal(t, "Live Music", CategoryName(categories, "mus"))
	assert.Equal(t, "Live Music", CategoryName(categories, "music"))
	assert.Equal(t, "Food & Drink", CategoryName(categories, "cat-2"))
	assert.Equal(t, OtherBucket, CategoryName(categories, ""))
	assert.Equal(t, OtherBucket, CategoryName(categories, "nope"))
}
