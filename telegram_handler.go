package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/pivolan/chart_trends/config"
	uuid "github.com/satori/go.uuid"
)

func handleText(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	// Привязываем uuid к чату: загрузка через веб с этим uuid ответит сюда
	id := uuid.NewV4().String()
	linkUploadChat(id, update.Message.Chat.ID)

	cfg := config.GetConfig()
	helpText := fmt.Sprintf(`Это бот для просмотра трендов музыкальных чартов. Пришлите дневную CSV выгрузку чарта (в имени файла должна быть дата YYYY-MM-DD, можно gzip/lz4/zip архив) - она добавится в датасет.

Команды:
/summary - сводка по датасету
/top_10 - топ последнего дня
/trends - движение за последний день
/movers - лучшие подъемы
/daily - агрегаты по дням с графиком
/streams - распределение прослушиваний
/track_<название> - история трека

Загрузка через браузер: POST http://localhost%s/upload, поле uuid=%s`, cfg.ListenAddr, id)

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, helpText)
	api.Send(msg)
}

// handleDocument скачивает присланный файл в каталог датасета и
// перезагружает данные
func handleDocument(api *tgbotapi.BotAPI, message *tgbotapi.Message) {
	fileURL, err := api.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		return
	}

	cfg := config.GetConfig()
	filePath := filepath.Join(cfg.DataDir, filepath.Base(message.Document.FileName))
	if err = os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	defer file.Close()
	if _, err = io.Copy(file, resp.Body); err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	if err := reloadDataset(); err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Файл не удалось загрузить: "+err.Error())
		api.Send(msg)
		return
	}
	sendStats(message.Chat.ID, api)
}

// sendStats отправляет сводку по всему датасету
func sendStats(chatID int64, api *tgbotapi.BotAPI) {
	ds := currentDataset()
	if ds == nil {
		msg := tgbotapi.NewMessage(chatID, "Датасет еще не загружен")
		api.Send(msg)
		return
	}
	msg := tgbotapi.NewMessage(chatID, GenerateSummaryMsg(SummarizeDataset(ds.Entries)))
	api.Send(msg)
}
