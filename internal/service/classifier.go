package service

import "heritage-check-api/internal/models"

// Classification is the outcome of applying the status precedence rules.
type Classification struct {
	Status           models.PropertyStatus
	ListedBuilding   *models.ListedBuilding
	ConservationArea *models.ConservationArea
	HasArticle4      bool
}

// Classify applies the absolute precedence order: any listed building within
// radius makes the property RED (nearest match surfaced), otherwise a
// containing conservation area makes it AMBER, otherwise GREEN. A conservation
// area around a listed building never changes a RED status, but it is still
// recorded and its article 4 flag still carried.
func Classify(buildings []models.ListedBuilding, area *models.ConservationArea) Classification {
	if len(buildings) > 0 {
		nearest := buildings[0]
		return Classification{
			Status:           models.StatusRed,
			ListedBuilding:   &nearest,
			ConservationArea: area,
			HasArticle4:      area != nil && area.HasArticle4,
		}
	}

	if area != nil {
		return Classification{
			Status:           models.StatusAmber,
			ConservationArea: area,
			HasArticle4:      area.HasArticle4,
		}
	}

	return Classification{Status: models.StatusGreen}
}
