package edamam

import (
	"fmt"
	"os"

	"github.com/alexmuntean1/freshfridge/internal/domain"
	"github.com/alexmuntean1/freshfridge/internal/logger"
)

// FromEnv builds a client from the EDAMAM_* environment variables. The
// search pair is required; the nutrition pair and base URL are optional.
func FromEnv(log *logger.Logger, opts ...ClientOption) (*Client, error) {
	search := Credentials{AppID: os.Getenv(EnvAppID), AppKey: os.Getenv(EnvAppKey)}
	if search.Empty() {
		return nil, fmt.Errorf("edamam: %s and %s: %w", EnvAppID, EnvAppKey, domain.ErrMissingKey)
	}

	var all []ClientOption
	if base := os.Getenv(EnvBaseURL); base != "" {
		all = append(all, WithBaseURL(base))
	}
	nutrition := Credentials{AppID: os.Getenv(EnvNutritionAppID), AppKey: os.Getenv(EnvNutritionAppKey)}
	if !nutrition.Empty() {
		all = append(all, WithNutritionCredentials(nutrition))
	} else {
		log.Debug("edamam: %s/%s not set, using search credentials for nutrition", EnvNutritionAppID, EnvNutritionAppKey)
	}
	all = append(all, opts...)
	return NewClient(search, log, all...), nil
}
