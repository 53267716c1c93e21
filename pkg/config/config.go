package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

const EnvProd = "production"
const EnvLocal = "local"

const prefix = "steam"

var C BaseConfig

type BaseConfig struct {
	Environment  string `envconfig:"ENV" default:"local"`
	FrontendPort string `envconfig:"PORT" default:"8081"`

	// Catalog
	CatalogPath string `envconfig:"CATALOG_PATH"` // Overrides the bundled dataset

	// Reviews endpoint
	ReviewsURL      string `envconfig:"REVIEWS_URL"`
	ReviewsLanguage string `envconfig:"REVIEWS_LANGUAGE"`
	ReviewsPerPage  int    `envconfig:"REVIEWS_PER_PAGE" default:"100"`
	ReviewsFilter   string `envconfig:"REVIEWS_FILTER" default:"recent"`
	ReviewsTimeout  int    `envconfig:"REVIEWS_TIMEOUT" default:"10"` // Seconds

	// Set from ldflags, not ENV
	Version string `ignored:"true"`
}

func Init(version string) (err error) {

	C.Version = version

	err = envconfig.Process(prefix, &C)
	if err != nil {
		return err
	}

	switch C.Environment {
	case EnvLocal, EnvProd:
	default:
		return errors.New("missing or invalid environment var: STEAM_ENV")
	}

	return nil
}

func (c BaseConfig) ListenOn() string {
	return "0.0.0.0:" + c.FrontendPort
}

func IsLocal() bool {
	return C.Environment == EnvLocal
}

func IsProd() bool {
	return C.Environment == EnvProd
}
