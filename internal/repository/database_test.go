package repository

import (
	"github.com/BoulehmiHoussem/Logient/internal/config"
)

func configWith(databaseURL string) config.Config {
	return config.Config{DatabaseURL: databaseURL}
}
