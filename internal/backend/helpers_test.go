package backend_test

import (
	"github.com/illien/illien/internal/backend"
	"github.com/illien/illien/internal/models"
)

func backendListener(seen *[]models.Settings) backend.Option {
	return backend.WithSettingsListener(func(st models.Settings) {
		*seen = append(*seen, st)
	})
}
