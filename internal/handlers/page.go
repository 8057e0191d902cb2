package handlers

import (
	"github.com/gofiber/fiber/v3"

	"querysearch/internal/config"
)

// PageData fills in the site branding every page layout expects.
// Keys already present in data are left alone.
func PageData(cfg *config.Config, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	for k, v := range map[string]string{
		"SiteTitle":   cfg.SiteTitle,
		"SiteTagline": cfg.SiteTagline,
		"SiteFooter":  cfg.SiteFooter,
	} {
		if _, ok := data[k]; !ok {
			data[k] = v
		}
	}
	return data
}
