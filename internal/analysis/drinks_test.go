package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nightowl-app/nightowl-backend-go/internal/models"
)

func TestYearlyDrinks(t *testing.T) {
	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

	thisYear := *models.NewNightSession(time.Date(2025, 2, 14, 21, 0, 0, 0, time.UTC))
	thisYear.DrinkCounts[models.DrinkBeer] = 3
	thisYear.DrinkCounts[models.DrinkWine] = 1

	alsoThisYear := *models.NewNightSession(time.Date(2025, 7, 4, 22, 0, 0, 0, time.UTC))
	alsoThisYear.DrinkCounts[models.DrinkBeer] = 2

	lastYear := *models.NewNightSession(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))
	lastYear.DrinkCounts[models.DrinkShot] = 10

	b := YearlyDrinks([]models.NightSession{thisYear, alsoThisYear, lastYear}, now)

	assert.Equal(t, 2025, b.Year)
	assert.Equal(t, 5, b.Counts[models.DrinkBeer])
	assert.Equal(t, 1, b.Counts[models.DrinkWine])
	assert.Zero(t, b.Counts[models.DrinkShot], "last year's shots stay out")
	assert.Equal(t, 6, b.Total)
	assert.Equal(t, models.DrinkBeer, b.Favorite)
}

func TestFavorite(t *testing.T) {
	t.Run("clear winner", func(t *testing.T) {
		assert.Equal(t, models.DrinkCocktail, Favorite(map[string]int{
			models.DrinkBeer:     1,
			models.DrinkCocktail: 4,
		}))
	})

	t.Run("tie breaks by category priority", func(t *testing.T) {
		// wine comes before shot in the fixed order
		assert.Equal(t, models.DrinkWine, Favorite(map[string]int{
			models.DrinkShot: 3,
			models.DrinkWine: 3,
		}))
	})

	t.Run("nothing logged", func(t *testing.T) {
		assert.Equal(t, models.FavoriteNone, Favorite(map[string]int{}))
		assert.Equal(t, models.FavoriteNone, Favorite(map[string]int{models.DrinkBeer: 0}))
	})
}
