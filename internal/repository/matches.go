package repository

import "github.com/iliyamo/cricket-ticket-booking/internal/model"

// DefaultMatches returns the built-in fixture list.
func DefaultMatches() []model.Match {
	return []model.Match{
		{
			ID:             "1",
			Title:          "India vs Australia",
			Category:       model.CategoryInternational,
			Teams:          [2]string{"India", "Australia"},
			Date:           "2024-01-15",
			Time:           "14:30",
			Venue:          "Melbourne Cricket Ground",
			City:           "Melbourne",
			Country:        "Australia",
			Price:          model.PriceRange{Min: 50, Max: 500},
			AvailableSeats: 1250,
			Format:         "Test Match",
		},
		{
			ID:             "2",
			Title:          "Mumbai Indians vs Chennai Super Kings",
			Category:       model.CategoryLeague,
			Teams:          [2]string{"Mumbai Indians", "Chennai Super Kings"},
			Date:           "2024-01-20",
			Time:           "19:30",
			Venue:          "Wankhede Stadium",
			City:           "Mumbai",
			Country:        "India",
			Price:          model.PriceRange{Min: 25, Max: 300},
			AvailableSeats: 800,
			Format:         "T20",
		},
		{
			ID:             "3",
			Title:          "England vs South Africa",
			Category:       model.CategoryInternational,
			Teams:          [2]string{"England", "South Africa"},
			Date:           "2024-01-25",
			Time:           "10:30",
			Venue:          "Lords Cricket Ground",
			City:           "London",
			Country:        "England",
			Price:          model.PriceRange{Min: 40, Max: 400},
			AvailableSeats: 950,
			Format:         "ODI",
		},
		{
			ID:             "4",
			Title:          "Royal Challengers vs Delhi Capitals",
			Category:       model.CategoryLeague,
			Teams:          [2]string{"Royal Challengers Bangalore", "Delhi Capitals"},
			Date:           "2024-01-18",
			Time:           "19:30",
			Venue:          "M. Chinnaswamy Stadium",
			City:           "Bangalore",
			Country:        "India",
			Price:          model.PriceRange{Min: 30, Max: 350},
			AvailableSeats: 600,
			Format:         "T20",
		},
		{
			ID:             "5",
			Title:          "Karnataka vs Tamil Nadu",
			Category:       model.CategoryDomestic,
			Teams:          [2]string{"Karnataka", "Tamil Nadu"},
			Date:           "2024-01-22",
			Time:           "09:30",
			Venue:          "M. A. Chidambaram Stadium",
			City:           "Chennai",
			Country:        "India",
			Price:          model.PriceRange{Min: 15, Max: 100},
			AvailableSeats: 2000,
			Format:         "First Class",
		},
		{
			ID:             "6",
			Title:          "Pakistan vs New Zealand",
			Category:       model.CategoryInternational,
			Teams:          [2]string{"Pakistan", "New Zealand"},
			Date:           "2024-01-30",
			Time:           "15:00",
			Venue:          "National Stadium",
			City:           "Karachi",
			Country:        "Pakistan",
			Price:          model.PriceRange{Min: 20, Max: 200},
			AvailableSeats: 1100,
			Format:         "T20I",
		},
	}
}
