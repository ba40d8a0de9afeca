package tgbot

import (
	"fmt"

	"regplace-bot/internal/logging"
	"regplace-bot/internal/report"
)

const (
	msgInvalidInput = "Некорректный ввод: отправьте номер заявки числом."
	msgBadPayload   = "Сбой в работе программы: не удалось разобрать ответ сервера."
	msgUnavailable  = "Сбой в работе программы: сервер регистрации недоступен, попробуйте позже."
)

// fail logs the failed request once and returns the text shown to the user.
func (a *App) fail(op string, err error) string {
	f := report.Error(a.log, a.alerts, op, err)
	switch f.Kind {
	case logging.KindUserInput:
		return msgInvalidInput
	case logging.KindTransport:
		return fmt.Sprintf("Ошибка: Статус ответа сервера: %d", f.Status)
	case logging.KindUnmappedCode, logging.KindExtraction:
		return msgBadPayload
	}
	return msgUnavailable
}
