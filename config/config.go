package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	DataDir    string
	ListenAddr string
	TgToken    string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig возвращает singleton экземпляр конфигурации
func GetConfig() *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil {
			log.Println("no .env file, reading environment as is")
		}

		config = &Config{
			DataDir:    os.Getenv("DATA_DIR"),
			ListenAddr: os.Getenv("LISTEN_ADDR"),
			TgToken:    os.Getenv("TG_TOKEN"),
		}
		if config.DataDir == "" {
			config.DataDir = "data"
		}
		if config.ListenAddr == "" {
			config.ListenAddr = ":8005"
		}
	})
	return config
}
