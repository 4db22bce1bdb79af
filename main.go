package main

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hmongspell/go-server/internal/httpserver"
	"github.com/hmongspell/go-server/internal/roster"
	"github.com/hmongspell/go-server/internal/store"
	"github.com/hmongspell/go-server/internal/words"
)

// config is parsed from the environment (a .env file is honored in dev).
type config struct {
	Port       string `env:"PORT" envDefault:"5175"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	WordsFile  string `env:"WORDS_FILE"`
	SeedRoster bool   `env:"SEED_ROSTER" envDefault:"true"`
}

func main() {
	_ = godotenv.Load()
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	catalog, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word catalog")
	}

	ros := roster.NewStore()
	if cfg.SeedRoster {
		// Starter roster so the very first launch has someone to play as.
		ros.AddTeacher("Teacher1")
		if _, err := ros.AddStudent(0, "Student1"); err != nil {
			log.Fatal().Err(err).Msg("failed to seed roster")
		}
	}

	srv := httpserver.New(catalog, ros, store.NewMemoryStore())
	log.Info().Str("port", cfg.Port).Int("words", catalog.Len()).Msg("starting go-server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
