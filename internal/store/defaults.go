package store

import (
	"time"

	"github.com/mamadbah2/foodtracker/internal/domain/models"
)

const dateLayout = "2006-01-02"

// defaultState is the sample dataset used when nothing usable is stored.
// Every call produces fresh ids.
func defaultState(ids IDGenerator, now time.Time) *models.State {
	return &models.State{
		Inventory: []models.InventoryItem{
			{ID: ids.New(), Name: "Organic apples", Category: "Fruit", Stock: 240, Price: 1800},
			{ID: ids.New(), Name: "Low-sodium kimchi", Category: "Pickles", Stock: 120, Price: 4200},
		},
		Orders: []models.Order{
			{
				ID:       ids.New(),
				Name:     "Gwangmyeong branch delivery",
				Owner:    "Park Mijeong",
				Deadline: now.Format(dateLayout),
				Status:   models.StatusInProgress,
			},
			{
				ID:       ids.New(),
				Name:     "Online store June promotion",
				Owner:    "Kim Suhyeon",
				Deadline: now.AddDate(0, 0, 4).Format(dateLayout),
				Status:   models.StatusOnHold,
			},
		},
		Suppliers: []models.Supplier{
			{ID: ids.New(), Name: "Green Farm Produce", Contact: "Lee Jonghyun", Phone: "02-1234-5678", Items: "Fresh fruit"},
			{ID: ids.New(), Name: "Clear Spring Foods", Contact: "Choi Hana", Phone: "031-987-6543", Items: "Sauces, dressings"},
		},
	}
}
