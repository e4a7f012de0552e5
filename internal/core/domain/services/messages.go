package services

import (
	"fmt"

	"tracker/internal/core/domain/model/order"
)

// StatusNotification is the Markdown text sent to a subscriber on a status change.
func StatusNotification(orderID string, status order.Status) string {
	return fmt.Sprintf("Обновление по заказу *%s*\nНовый статус: *%s*", orderID, status)
}

// PaymentReminder is the Markdown text sent to an unpaid participant.
func PaymentReminder(orderID string) string {
	return fmt.Sprintf(
		"Заказ *%s*\nСтатус: *Доставка не оплачена*\n\nПожалуйста, оплатите доставку. Если уже оплатили — проигнорируйте.",
		orderID,
	)
}
