package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alessioferri/trattoria-app/config"
	"github.com/alessioferri/trattoria-app/services"
	"github.com/alessioferri/trattoria-app/utils"
)

type MenuController struct {
	Catalog   *services.CatalogService
	Translate *services.TranslateService
	Cfg       *config.Config
}

func NewMenuController(catalog *services.CatalogService, translate *services.TranslateService, cfg *config.Config) *MenuController {
	return &MenuController{Catalog: catalog, Translate: translate, Cfg: cfg}
}

// GetMenu returns the display menu grouped by category, translated into the
// requested language. A translation failure fails the whole request.
func (mc *MenuController) GetMenu(c *gin.Context) {
	lang := mc.Cfg.NormalizeLanguage(c.Query("lang"))

	groups, err := mc.Catalog.ListDisplayItems(c.Request.Context(), lang)
	if err != nil {
		utils.ErrorLogger.Printf("menu listing failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load menu"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu", gin.H{
		"lang":       lang,
		"categories": groups,
	})
}

// TranslateText translates a single string for the client.
func (mc *MenuController) TranslateText(c *gin.Context) {
	var req struct {
		Text           string `json:"text"`
		TargetLanguage string `json:"target_language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("text is required"))
		return
	}

	lang := mc.Cfg.NormalizeLanguage(req.TargetLanguage)
	translated, err := mc.Translate.Translate(c.Request.Context(), req.Text, lang)
	if err != nil {
		utils.ErrorLogger.Printf("translate failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("translation failed"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Translated", gin.H{
		"input":           req.Text,
		"target_language": lang,
		"translated":      translated,
	})
}
