package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/chart_trends/config"
)

// Связка uuid веб-загрузки с чатом телеграма, чтобы ответить туда.
// Пишется из горутин обработчиков бота, читается из http
var (
	usersMu sync.Mutex
	users   = map[string]int64{}
)
var bot *tgbotapi.BotAPI

func linkUploadChat(id string, chatID int64) {
	usersMu.Lock()
	defer usersMu.Unlock()
	users[id] = chatID
}

func uploadChat(id string) (int64, bool) {
	usersMu.Lock()
	defer usersMu.Unlock()
	chatID, ok := users[id]
	return chatID, ok
}

var (
	datasetMu sync.RWMutex
	dataset   *Dataset
	cache     = NewResultCache()
)

func currentDataset() *Dataset {
	datasetMu.RLock()
	defer datasetMu.RUnlock()
	return dataset
}

// reloadDataset перечитывает каталог с CSV и сбрасывает кеш пересчетов.
// Старые производные таблицы не переиспользуются - все считается заново.
func reloadDataset() error {
	cfg := config.GetConfig()
	ds, err := LoadDataset(cfg.DataDir)
	if err != nil {
		return err
	}
	datasetMu.Lock()
	dataset = ds
	datasetMu.Unlock()
	cache.Invalidate()
	return nil
}

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	// Путь к датасету можно передать аргументом вместо .env
	if len(os.Args) > 1 {
		cfg.DataDir = os.Args[1]
	}

	if err := reloadDataset(); err != nil {
		log.Fatalln("cannot load dataset:", err)
	}

	http.HandleFunc("/", handleDashboard)
	http.HandleFunc("/charts", handleCharts)
	http.HandleFunc("/download", handleDownload)
	http.HandleFunc("/upload", handleUpload)

	go func() {
		fmt.Println("listen on: http://localhost" + cfg.ListenAddr)
		err := http.ListenAndServe(cfg.ListenAddr, nil)
		if err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()

	go func() {
		for {
			time.Sleep(time.Minute)
			removeOldFiles("upload", time.Now().Add(-time.Hour*2))
		}
	}()

	if cfg.TgToken == "" {
		fmt.Println("TG_TOKEN is empty, telegram bot disabled")
		select {}
	}

	var err error
	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error", err)
	}
	fmt.Println("bot init")
	log.Printf("Authorized on account %s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("tg updates error", err)
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}

		if update.Message.Document != nil {
			go handleDocument(bot, update.Message)
		} else if update.Message.IsCommand() {
			go handleCommand(bot, update)
		} else if update.Message.Text != "" {
			go handleText(bot, update)
		}
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		if file.IsDir() {
			err := removeOldFiles(filePath, maxAge)
			if err != nil {
				return err
			}
			continue
		}
		fileStat, err := os.Stat(filePath)
		if err != nil {
			return err
		}
		if fileStat.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			fmt.Printf("Removed file: %s\n", filePath)
		}
	}

	return nil
}
