package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mari/gift-list-website/internal/domain"
)

// DemoHandler serves the static demonstration list. No store calls are made;
// visitors can see what a gift page looks like before registering.
type DemoHandler struct{}

func NewDemoHandler() *DemoHandler {
	return &DemoHandler{}
}

func (h *DemoHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, demoProfile())
}

func demoProfile() *domain.UserProfile {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &domain.UserProfile{
		UID:         uuid.Nil,
		Username:    "demo",
		DisplayName: "Lista de Demonstração",
		Bio:         "Exemplo de lista de presentes",
		CreatedAt:   created,
		UpdatedAt:   created,
		Gifts: []domain.Gift{
			{
				ID:          "demo-1",
				Name:        "Smartphone Premium",
				Description: "Último modelo com ótima câmera e bateria de longa duração",
				Price:       2500.00,
				ImageURL:    "https://via.placeholder.com/300x200?text=Smartphone",
				Link:        "https://example.com/smartphone",
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			{
				ID:          "demo-2",
				Name:        "Fones de Ouvido Bluetooth",
				Description: "Fones sem fio com cancelamento de ruído",
				Price:       350.00,
				ImageURL:    "https://via.placeholder.com/300x200?text=Fones",
				Link:        "https://example.com/fones",
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			{
				ID:          "demo-3",
				Name:        "Livro de Programação",
				Description: "Guia completo para desenvolvimento web moderno",
				Price:       89.90,
				ImageURL:    "https://via.placeholder.com/300x200?text=Livro",
				Link:        "https://example.com/livro",
				IsPurchased: true,
				PurchasedBy: "Ana",
				CreatedAt:   created,
				UpdatedAt:   created,
			},
		},
	}
}
