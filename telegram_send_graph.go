package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// sendChartImage отправляет PNG график в чат. Маленькие картинки уходят
// фотографией, большие - документом: телеграм пережимает крупные фото
// до нечитаемости.
func sendChartImage(graph []byte, caption, name string, chatID int64, api *tgbotapi.BotAPI) {
	fileName := fmt.Sprintf("%s_%s.png", name, time.Now().Format("20060102-150405"))

	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	const maxSizePhoto = 150000

	if len(graph) < maxSizePhoto {
		docMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		docMsg.Caption = caption
		if _, err := api.Send(docMsg); err != nil {
			log.Printf("Ошибка отправки графика %s: %v", name, err)
			api.Send(tgbotapi.NewMessage(chatID,
				fmt.Sprintf("Не удалось отправить график %s. Ошибка: %v", name, err)))
		}
		return
	}

	docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
	docMsg.Caption = caption
	if _, err := api.Send(docMsg); err != nil {
		log.Printf("Ошибка отправки графика %s: %v", name, err)
		api.Send(tgbotapi.NewMessage(chatID,
			fmt.Sprintf("Не удалось отправить график %s. Ошибка: %v", name, err)))
	}
}
