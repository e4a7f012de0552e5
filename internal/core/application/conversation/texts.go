package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/domain/services"
	"tracker/internal/core/ports"
)

// Menu button labels. Matching is case-insensitive.
const (
	btnTrack         = "Отследить разбор"
	btnMyAddresses   = "Мои адреса"
	btnSubscriptions = "Мои подписки"
	btnCancel        = "Отмена"

	btnAddOrder    = "Добавить разбор"
	btnMassStatus  = "Админ: Статусы"
	btnBroadcast   = "Админ: Рассылка"
	btnAddresses   = "Админ: Адреса"
	btnEditAddress = "Админ: Изменить адрес"
	btnExitAdmin   = "Выйти из админ-панели"
	btnRemindAll   = "Уведомления всем должникам"
	btnRemindOrder = "Уведомления по ID разбора"
	btnBackToAdmin = "Назад, в админ-панель"
)

var cancelKeywords = map[string]struct{}{
	"отмена": {},
	"cancel": {},
}

var (
	mainKeyboard = ports.ReplyKeyboard{
		{btnTrack},
		{btnMyAddresses, btnSubscriptions},
		{btnCancel},
	}

	adminKeyboard = ports.ReplyKeyboard{
		{btnAddOrder, btnTrack},
		{btnMassStatus, btnBroadcast},
		{btnAddresses, btnEditAddress},
		{btnExitAdmin},
	}

	broadcastKeyboard = ports.ReplyKeyboard{
		{btnRemindAll},
		{btnRemindOrder},
		{btnBackToAdmin},
	}
)

const txtHelp = "Команды:\n" +
	"• Отследить заказ — статус по номеру\n" +
	"• Мои адреса — добавить/изменить адрес\n" +
	"• Мои подписки — список подписок\n" +
	"• /admin — админ-панель (для админов)"

const (
	txtStart        = "Привет! Я бот SEABLUU для отслеживания заказов и адресов."
	txtCancelled    = "Ок, отменил. Что дальше?"
	txtUnknown      = "Не понял. Нажмите кнопку ниже или введите номер заказа. Для выхода — «Отмена»."
	txtFailed       = "Не получилось, попробуйте позже."
	txtAdminMenu    = "Админ-панель:"
	txtAdminExit    = "Ок, вышли из админ-панели."
	txtBroadcast    = "Раздел «Рассылка»"
	txtOrderMissing = "Заказ не найден."

	txtAskOrderID       = "Введи *order_id* (например: CN-12345):"
	txtBadOrderID       = "Не вижу номера заказа. Пример: CN-12345\nВведи ещё раз или нажми «Отмена»."
	txtAskClient        = "Имя клиента (можно несколько @username):"
	txtAskCountry       = "Страна/склад (CN или KR):"
	txtBadCountry       = "Введи 'CN' (Китай) или 'KR' (Корея):"
	txtAskStatus        = "Выбери стартовый статус кнопкой ниже или напиши точный:"
	txtBadStatus        = "Выбери статус кнопкой ниже или напиши точный:"
	txtStaleStatus      = "Некорректный статус."
	txtAskNote          = "Примечание (или '-' если нет):"
	txtDuplicateOrder   = "Заказ с таким номером уже есть."
	txtAskFindOrder     = "Введи *order_id* для поиска:"
	txtAskMassStatus    = "Выбери новый статус:"
	txtAskMassIDs       = "Пришли номера заказов через пробел, запятую или с новой строки:"
	txtAskSetStatus     = "Выбери новый статус для заказа *%s*:"
	txtAskUsernames     = "Пришли @username или несколько через пробел/запятую/новую строку."
	txtAskEditUsername  = "Пришли @username клиента, чей адрес нужно изменить:"
	txtAddressNotFound  = "@%s: адрес не найден"
	txtAskRemindOrderID = "Введи *order_id* для рассылки неплательщикам:"

	txtAskTrack        = "Отправьте номер заказа (например: CN-12345):"
	txtTrackNotFound   = "Такой заказ не найден. Проверьте номер или повторите позже."
	txtNoAddress       = "У вас пока нет адреса. Хотите добавить?"
	txtAddressDeleted  = "Адрес удалён ✅"
	txtNothingToDelete = "Удалять нечего — адрес не найден."
	txtNoSubscriptions = "Подписок пока нет. Отследите заказ и нажмите «Подписаться»."
	txtSubscribed      = "Готово! Буду присылать обновления по этому заказу 🔔"
	txtUnsubscribed    = "Отписка выполнена."
	txtNotSubscribed   = "Вы и так не были подписаны."
	txtAskFullName     = "Давайте добавим/обновим адрес.\nФИО:"
	txtBadFullName     = "ФИО не может быть пустым. Введи ещё раз или нажми «Отмена»."
	txtAskPhone        = "Телефон (пример: 87001234567):"
	txtBadPhone        = "Нужно 11 цифр и обязательно с 8. Пример: 87001234567\nВведи номер ещё раз или нажми «Отмена»:"
	txtAskCity         = "Город (пример: Астана):"
	txtBadCity         = "Город не может быть пустым. Введи ещё раз или нажми «Отмена»."
	txtAskStreet       = "Адрес (свободный формат):"
	txtBadStreet       = "Адрес не может быть пустым. Введи ещё раз или нажми «Отмена»."
	txtAskPostcode     = "Почтовый индекс (пример: 010000):"
	txtBadPostcode     = "Индекс выглядит странно. Пример: 010000\nВведи индекс ещё раз или нажми «Отмена»."
)

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// mdEscape escapes a value for the legacy Markdown parse mode.
func mdEscape(s string) string {
	return markdownEscaper.Replace(s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}

// statusKeyboard lays the catalog out two per row, each button carrying
// action:<catalog index>.
func statusKeyboard(action string) ports.InlineKeyboard {
	const cols = 2
	var rows ports.InlineKeyboard
	var row []ports.InlineButton
	for i, s := range order.Statuses() {
		row = append(row, ports.InlineButton{Text: s.String(), Data: adminToken(action, strconv.Itoa(i))})
		if len(row) == cols {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func subscribeKeyboard(orderID string, subscribed bool) ports.InlineKeyboard {
	if subscribed {
		return ports.InlineKeyboard{{{Text: "🔕 Отписаться", Data: unsubscribeToken(orderID)}}}
	}
	return ports.InlineKeyboard{{{Text: "🔔 Подписаться на обновления", Data: subscribeToken(orderID)}}}
}

func addAddressKeyboard() ports.InlineKeyboard {
	return ports.InlineKeyboard{{{Text: "➕ Добавить адрес", Data: addressToken(actAddressAdd)}}}
}

func editAddressKeyboard() ports.InlineKeyboard {
	return ports.InlineKeyboard{
		{{Text: "✏️ Изменить адрес", Data: addressToken(actAddressAdd)}},
		{{Text: "🗑 Удалить адрес", Data: addressToken(actAddressDel)}},
	}
}

// customerCard is the status card shown to customers.
func customerCard(card queries.GetOrderQueryResponse) string {
	status := card.Status.String()
	if status == "" {
		status = "статус не указан"
	}
	txt := fmt.Sprintf("Заказ *%s*\nСтатус: *%s*", mdEscape(card.ID), mdEscape(status))
	if card.Source != "" {
		txt += "\nСтрана/источник: " + mdEscape(card.Source)
	}
	return txt
}

// adminCard is the full order card with participants.
func adminCard(card queries.GetOrderQueryResponse) string {
	lines := []string{
		fmt.Sprintf("*order_id:* `%s`", card.ID),
		"*client_name:* " + mdEscape(orDash(card.ClientName)),
		"*status:* " + mdEscape(orDash(card.Status.String())),
		"*note:* " + mdEscape(orDash(card.Note)),
		"*country:* " + mdEscape(orDash(card.Source)),
	}
	if card.Origin != "" && card.Origin != card.Source {
		lines = append(lines, "*origin:* "+mdEscape(card.Origin))
	}
	if card.Phone != "" {
		lines = append(lines, "*phone:* "+mdEscape(card.Phone))
	}
	if !card.UpdatedAt.IsZero() {
		lines = append(lines, "*updated_at:* "+card.UpdatedAt.Format("2006-01-02 15:04"))
	}
	if len(card.Participants) > 0 {
		lines = append(lines, "", "*Участники:*")
		for _, p := range card.Participants {
			lines = append(lines, fmt.Sprintf("%s @%s", paidMark(p.Paid), mdEscape(p.Username)))
		}
	}
	return strings.Join(lines, "\n")
}

func paidMark(paid bool) string {
	if paid {
		return "✅"
	}
	return "❌"
}

// adminCardKeyboard offers a status change and one paid toggle per participant.
func adminCardKeyboard(card queries.GetOrderQueryResponse) ports.InlineKeyboard {
	kb := ports.InlineKeyboard{
		{{Text: "✏️ Сменить статус", Data: adminToken(actSetStatus, card.ID)}},
	}
	for _, p := range card.Participants {
		kb = append(kb, []ports.InlineButton{{
			Text: fmt.Sprintf("%s @%s", paidMark(p.Paid), p.Username),
			Data: adminToken(actTogglePaid, card.ID, p.Username),
		}})
	}
	return kb
}

func addressLines(v queries.AddressView) string {
	return fmt.Sprintf("ФИО: %s\nТелефон: %s\nГород: %s\nАдрес: %s\nИндекс: %s",
		v.FullName, v.Phone, v.City, v.Street, v.Postcode)
}

func addressLookupText(lines []queries.AddressLookupLine) string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l.Address == nil {
			out = append(out, fmt.Sprintf(txtAddressNotFound, l.Username))
			continue
		}
		out = append(out, "@"+l.Username+"\n"+addressLines(*l.Address))
	}
	return strings.Join(out, "\n\n")
}

func addressSavedText(res commands.SaveAddressResult) string {
	a := res.Address
	txt := "Адрес сохранён ✅\n\n" + addressLines(queries.AddressView{
		FullName: a.FullName(),
		Phone:    a.Phone(),
		City:     a.City(),
		Street:   a.Street(),
		Postcode: a.Postcode(),
	})
	if len(res.Subscribed) > 0 {
		txt += "\n\nПодписал на обновления по заказам: " + strings.Join(res.Subscribed, ", ")
	}
	return txt
}

func subscriptionsText(views []queries.SubscriptionView) (string, ports.InlineKeyboard) {
	lines := make([]string, 0, len(views))
	kb := make(ports.InlineKeyboard, 0, len(views))
	for _, v := range views {
		status := v.CurrentStatus
		if status.IsEmpty() {
			status = v.LastSentStatus
		}
		lines = append(lines, fmt.Sprintf("• %s (последний статус: %s)", v.OrderID, orDash(status.String())))
		kb = append(kb, []ports.InlineButton{{Text: "🗑 Отписаться от " + v.OrderID, Data: unsubscribeToken(v.OrderID)}})
	}
	return "Ваши подписки:\n" + strings.Join(lines, "\n"), kb
}

var massOutcomeLabels = map[commands.MassUpdateOutcome]string{
	commands.OutcomeUpdated:  "✅ обновлён",
	commands.OutcomeNotFound: "❌ не найден",
	commands.OutcomeInvalid:  "⚠️ не распознан",
}

func massUpdateText(status order.Status, report commands.MassUpdateReport) string {
	lines := []string{fmt.Sprintf("Новый статус: %s", status)}
	for _, l := range report.Lines {
		id := l.OrderID
		if id == "" {
			id = l.Input
		}
		lines = append(lines, fmt.Sprintf("%s — %s", id, massOutcomeLabels[l.Outcome]))
	}
	lines = append(lines, "",
		fmt.Sprintf("Обновлено: %d", report.Count(commands.OutcomeUpdated)),
		fmt.Sprintf("Не найдено: %d", report.Count(commands.OutcomeNotFound)),
		fmt.Sprintf("Не распознано: %d", report.Count(commands.OutcomeInvalid)))
	return strings.Join(lines, "\n")
}

var failureLabels = map[ports.DeliveryFailure]string{
	ports.FailureBlocked:     "бот заблокирован",
	ports.FailureNotFound:    "чат не найден",
	ports.FailureBadRequest:  "некорректный запрос",
	ports.FailureRateLimited: "лимит запросов",
	ports.FailureTimeout:     "таймаут",
	ports.FailureOther:       "ошибка",
}

func deliveryLineText(l services.DeliveryLine) string {
	who := strconv.FormatInt(l.UserID, 10)
	if l.Username != "" {
		who = "@" + l.Username
	}
	if l.OK() {
		return "✅ " + who
	}
	return fmt.Sprintf("❌ %s: %s", who, failureLabels[l.Failure])
}

// reminderText reports one order: totals, failed recipients and usernames
// without an address.
func reminderText(r services.DeliveryReport) string {
	lines := []string{
		"Рассылка по заказу " + r.OrderID,
		fmt.Sprintf("Получателей: %d, успешно: %d, ошибок: %d", r.Total(), r.Sent(), r.Failed()),
	}
	for _, l := range r.Lines {
		if !l.OK() {
			lines = append(lines, deliveryLineText(l))
		}
	}
	if len(r.Unresolved) > 0 {
		lines = append(lines, "Нет адреса: @"+strings.Join(r.Unresolved, ", @"))
	}
	return strings.Join(lines, "\n")
}

func batchReminderText(b services.BatchReport) string {
	lines := []string{
		"📣 Уведомления всем должникам — итог",
		fmt.Sprintf("Разборов: %d", len(b.Orders)),
		fmt.Sprintf("Успешно: %d", b.Sent()),
		fmt.Sprintf("Ошибок: %d", b.Failed()),
		"",
	}
	for i := range b.Orders {
		r := &b.Orders[i]
		line := fmt.Sprintf("%s: ✅ %d ❌ %d", r.OrderID, r.Sent(), r.Failed())
		if len(r.Unresolved) > 0 {
			line += fmt.Sprintf(" (без адреса: %d)", len(r.Unresolved))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
