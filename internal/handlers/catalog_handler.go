package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

type catalogBarber struct {
	BarberID uint    `json:"barber_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

type catalogService struct {
	ServiceID        uint            `json:"service_id"`
	Name             string          `json:"service_name"`
	Description      string          `json:"description,omitempty"`
	EstimatedMinutes int             `json:"estimated_minutes"`
	Barbers          []catalogBarber `json:"barbers"`
}

type catalogCategory struct {
	CategoryID uint             `json:"category_id"`
	Name       string           `json:"category_name"`
	Services   []catalogService `json:"services"`
}

// GetCatalog devolve categorias → serviços → barbeiros com preço,
// no formato que o app consome para montar a tela de agendamento
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_catalog"})
		return
	}

	var services []models.Service
	if err := h.db.Order("name").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_catalog"})
		return
	}

	var prices []models.BarberServicePrice
	if err := h.db.Preload("Barber").Find(&prices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_load_catalog"})
		return
	}

	barbersByService := map[uint][]catalogBarber{}
	for _, p := range prices {
		barbersByService[p.ServiceID] = append(barbersByService[p.ServiceID], catalogBarber{
			BarberID: p.BarberID,
			Name:     p.Barber.Name,
			Price:    p.Price,
		})
	}

	servicesByCategory := map[uint][]catalogService{}
	for _, s := range services {
		entry := catalogService{
			ServiceID:        s.ID,
			Name:             s.Name,
			Description:      s.Description,
			EstimatedMinutes: s.EstimatedMinutes,
			Barbers:          barbersByService[s.ID],
		}
		if entry.Barbers == nil {
			entry.Barbers = []catalogBarber{}
		}
		servicesByCategory[s.CategoryID] = append(servicesByCategory[s.CategoryID], entry)
	}

	out := make([]catalogCategory, 0, len(categories))
	for _, cat := range categories {
		entry := catalogCategory{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Services:   servicesByCategory[cat.ID],
		}
		if entry.Services == nil {
			entry.Services = []catalogService{}
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}
