package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eventhub/internal/model"
)

func rating(v float64) *float64 { return &v }

func TestTrendingPrefersHighestRating(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "meh", Rating: rating(2)},
		{ID: "2", Title: "great", Rating: rating(4.5)},
		{ID: "3", Title: "unrated"},
	}

	pick := Trending(events)
	assert.NotNil(t, pick)
	assert.Equal(t, "great", pick.Title)
}

func TestTrendingRatingTieKeepsInputOrder(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "first five", Rating: rating(5)},
		{ID: "2", Title: "second five", Rating: rating(5)},
	}

	pick := Trending(events)
	assert.NotNil(t, pick)
	assert.Equal(t, "first five", pick.Title)
}

func TestTrendingFallsBackToSoonestDate(t *testing.T) {
	// Nothing rated above zero: the soonest-dated event wins. A zero
	// rating is treated like no rating here.
	events := []model.Event{
		{ID: "1", Title: "later", Date: date(2024, time.March, 20), Rating: rating(0)},
		{ID: "2", Title: "sooner", Date: date(2024, time.March, 5)},
		{ID: "3", Title: "dateless"},
	}

	pick := Trending(events)
	assert.NotNil(t, pick)
	assert.Equal(t, "sooner", pick.Title)
}

func TestTrendingDateTieKeepsInputOrder(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "first", Date: date(2024, time.March, 5)},
		{ID: "2", Title: "second", Date: date(2024, time.March, 5)},
	}

	pick := Trending(events)
	assert.NotNil(t, pick)
	assert.Equal(t, "first", pick.Title)
}

func TestTrendingEmptyInput(t *testing.T) {
	assert.Nil(t, Trending(nil))
	assert.Nil(t, Trending([]model.Event{}))
}

func TestTrendingDoesNotMutateInput(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "a", Rating: rating(1)},
		{ID: "2", Title: "b", Rating: rating(3)},
		{ID: "3", Title: "c", Rating: rating(2)},
	}

	_ = Trending(events)
	assert.Equal(t, []string{"a", "b", "c"}, titles(events))
}
