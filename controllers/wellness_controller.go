package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/unbem/unbem/utils"
)

// WellnessController serves the curated self-care catalog and the support
// contact directory. Both are read-only editorial content.
type WellnessController struct{}

func NewWellnessController() *WellnessController { return &WellnessController{} }

type resourceLink struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type resource struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Links       []resourceLink `json:"links"`
}

var resourceCatalog = []resource{
	{
		Title:       "Breathing techniques and coping with crises",
		Description: "Learn to manage anxiety and stay present with simple breathing exercises.",
		Links: []resourceLink{
			{Text: "Diaphragmatic breathing for anxiety", URL: "https://youtu.be/90tpylJ_K-U"},
			{Text: "Guided meditation to calm the mind", URL: "https://youtu.be/8YG8HABY25w"},
		},
	},
	{
		Title:       "Inspiring talks",
		Description: "Motivation and fresh perspectives from selected videos.",
		Links: []resourceLink{
			{Text: "Embracing vulnerability", URL: "https://youtu.be/VdZI5gMS9nM"},
			{Text: "The power of the mind", URL: "https://youtu.be/z4plH2K2uHY"},
			{Text: "For those feeling lost", URL: "https://youtu.be/Fb5IzFx2MDk"},
		},
	},
	{
		Title:       "Mindfulness and meditation",
		Description: "Guided practices to calm the mind, lower stress and improve focus for studying.",
		Links: []resourceLink{
			{Text: "Guided meditation for beginners", URL: "https://youtu.be/rVTqBPop4LA"},
			{Text: "Meditation for focus", URL: "https://youtu.be/w306WAzow3s"},
			{Text: "Meditation for deep sleep", URL: "https://youtu.be/zPvuphuFWS0"},
			{Text: "Meditation for anxiety relief", URL: "https://youtu.be/QJ6j77GjdFQ"},
		},
	},
	{
		Title:       "Healthy routine tips",
		Description: "Organizing study, sleep and leisure for well-being and productivity.",
		Links: []resourceLink{
			{Text: "Article: sleep hygiene", URL: "https://multivix.edu.br/blog/higiene-do-sono/"},
			{Text: "Article: a healthy, productive routine", URL: "https://www.essentialnutrition.com.br/conteudos/rotina-saudavel-e-produtiva/"},
		},
	},
}

type supportContact struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone,omitempty"`
	URL         string `json:"url,omitempty"`
}

var supportContacts = []supportContact{
	{
		Name:        "CVV - Centro de Valorização da Vida",
		Description: "Free, confidential emotional support and suicide prevention, around the clock.",
		Phone:       "188",
		URL:         "https://www.cvv.org.br",
	},
	{
		Name:        "UnB psychological support (CAEP)",
		Description: "Psychological care for the academic community, offered through DASU/DAC.",
		URL:         "http://www.caep.unb.br/servicos-oferecidos/atendimento-psicologico",
	},
}

// GetResources returns the self-care resource catalog.
func (w *WellnessController) GetResources(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"resources": resourceCatalog})
}

// GetSupport returns the emotional-support contact directory.
func (w *WellnessController) GetSupport(ctx *gin.Context) {
	utils.Success(ctx, gin.H{"contacts": supportContacts})
}
