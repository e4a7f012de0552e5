package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/domain/model/order"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"go.uber.org/zap"
)

// adminText handles admin menu buttons and admin wizard steps. handled is
// false when the event belongs to the customer flow.
func (r *Router) adminText(ctx context.Context, ev TextEvent, sess ports.Session, raw, key string) (bool, error) {
	chatID := ev.ChatID
	md := ports.SendOptions{Markdown: true}

	switch key {
	case strings.ToLower(btnExitAdmin):
		return true, r.finish(ctx, chatID, txtAdminExit, ports.SendOptions{Reply: mainKeyboard})
	case strings.ToLower(btnAddOrder):
		return true, r.start(ctx, chatID, modeAddOrderID, txtAskOrderID, md)
	case strings.ToLower(btnBroadcast):
		return true, r.sendWith(ctx, chatID, txtBroadcast, ports.SendOptions{Reply: broadcastKeyboard})
	case strings.ToLower(btnBackToAdmin):
		return true, r.adminMenu(ctx, chatID)
	case strings.ToLower(btnRemindAll):
		return true, r.remindAll(ctx, chatID)
	case strings.ToLower(btnRemindOrder):
		return true, r.start(ctx, chatID, modeRemindOrder, txtAskRemindOrderID, md)
	case strings.ToLower(btnAddresses):
		return true, r.start(ctx, chatID, modeAddrUsernames, txtAskUsernames, ports.SendOptions{})
	case strings.ToLower(btnEditAddress):
		return true, r.start(ctx, chatID, modeEditAddrUser, txtAskEditUsername, ports.SendOptions{})
	case strings.ToLower(btnMassStatus):
		return true, r.start(ctx, chatID, modeMassStatusPick, txtAskMassStatus,
			ports.SendOptions{Inline: statusKeyboard(actMassStatus)})
	case strings.ToLower(btnTrack):
		if sess.Mode == "" {
			return true, r.start(ctx, chatID, modeFindOrder, txtAskFindOrder, md)
		}
	}

	if idx, ok := addressStepOf(sess.Mode, adminAddressPrefix); ok {
		target, ok := adminAddressTarget(sess)
		if !ok {
			return true, r.finish(ctx, chatID, txtFailed, ports.SendOptions{})
		}
		return true, r.addressWizardStep(ctx, chatID, sess, adminAddressPrefix, idx, raw, target)
	}

	switch sess.Mode {
	case modeAddOrderID:
		id, ok := kernel.ExtractOrderID(raw)
		if !ok {
			return true, r.send(ctx, chatID, txtBadOrderID)
		}
		sess.Buffer = map[string]string{bufOrderID: id}
		return true, r.enter(ctx, chatID, sess, modeAddOrderClient, txtAskClient, ports.SendOptions{})

	case modeAddOrderClient:
		sess.Buffer[bufClientName] = raw
		return true, r.enter(ctx, chatID, sess, modeAddOrderCountry, txtAskCountry, ports.SendOptions{})

	case modeAddOrderCountry:
		country, err := order.ParseCountry(raw)
		if err != nil {
			return true, r.send(ctx, chatID, txtBadCountry)
		}
		sess.Buffer[bufCountry] = country.String()
		return true, r.enter(ctx, chatID, sess, modeAddOrderStatus, txtAskStatus,
			ports.SendOptions{Inline: statusKeyboard(actPickStatus)})

	case modeAddOrderStatus:
		status, err := order.ParseStatus(raw)
		if err != nil {
			return true, r.sendWith(ctx, chatID, txtBadStatus, ports.SendOptions{Inline: statusKeyboard(actPickStatus)})
		}
		sess.Buffer[bufStatus] = status.String()
		return true, r.enter(ctx, chatID, sess, modeAddOrderNote, txtAskNote, ports.SendOptions{})

	case modeAddOrderNote:
		note := raw
		if note == "-" {
			note = ""
		}
		return true, r.commitOrder(ctx, chatID, sess, note)

	case modeFindOrder:
		return true, r.findOrder(ctx, chatID, raw)

	case modeMassStatusPick:
		return true, r.sendWith(ctx, chatID, txtAskMassStatus, ports.SendOptions{Inline: statusKeyboard(actMassStatus)})

	case modeMassStatusIDs:
		return true, r.massUpdate(ctx, chatID, sess, raw)

	case modeSetStatusPick:
		return true, r.sendWith(ctx, chatID, fmt.Sprintf(txtAskSetStatus, mdEscape(sess.Buffer[bufOrderID])),
			ports.SendOptions{Markdown: true, Inline: statusKeyboard(actPickSetStatus)})

	case modeAddrUsernames:
		query, err := queries.NewFindAddressesByUsernamesQuery(raw)
		if err != nil {
			return true, r.send(ctx, chatID, txtAskUsernames)
		}
		lines, err := r.h.FindAddresses.Handle(ctx, query)
		if err != nil {
			return true, r.failedFinish(ctx, chatID, "address lookup", err)
		}
		return true, r.finish(ctx, chatID, addressLookupText(lines), ports.SendOptions{})

	case modeEditAddrUser:
		return true, r.startAddressEdit(ctx, chatID, sess, raw)

	case modeRemindOrder:
		return true, r.remindOrder(ctx, chatID, raw)
	}

	return false, nil
}

func (r *Router) commitOrder(ctx context.Context, chatID int64, sess ports.Session, note string) error {
	buf := sess.Buffer
	cmd, err := commands.NewAddOrderCommand(buf[bufOrderID], buf[bufClientName], buf[bufCountry], buf[bufStatus], note)
	if err != nil {
		return r.failedFinish(ctx, chatID, "add order", err)
	}

	o, err := r.h.AddOrder.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrDuplicateKey):
		return r.finish(ctx, chatID, txtDuplicateOrder, ports.SendOptions{})
	case err != nil:
		return r.failedFinish(ctx, chatID, "add order", err)
	}

	text := fmt.Sprintf("Заказ *%s* добавлен ✅", mdEscape(o.ID()))
	if mentions := kernel.ExtractMentions(o.ClientName()); len(mentions) > 0 {
		text += "\nУчастники: " + mdEscape("@"+strings.Join(mentions, ", @"))
	}
	return r.finish(ctx, chatID, text, ports.SendOptions{Markdown: true})
}

func (r *Router) findOrder(ctx context.Context, chatID int64, raw string) error {
	query, err := queries.NewGetOrderQuery(raw, 0)
	if err != nil {
		return r.send(ctx, chatID, txtAskFindOrder)
	}

	card, err := r.h.GetOrder.Handle(ctx, query)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return r.finish(ctx, chatID, txtOrderMissing, ports.SendOptions{})
	case err != nil:
		return r.failedFinish(ctx, chatID, "find order", err)
	}
	return r.finish(ctx, chatID, adminCard(card), ports.SendOptions{Markdown: true, Inline: adminCardKeyboard(card)})
}

func (r *Router) massUpdate(ctx context.Context, chatID int64, sess ports.Session, raw string) error {
	cmd, err := commands.NewMassUpdateStatusCommand(order.Status(sess.Buffer[bufStatus]), raw)
	switch {
	case errors.Is(err, errs.ErrValueIsRequired) && sess.Buffer[bufStatus] != "":
		return r.send(ctx, chatID, txtAskMassIDs)
	case err != nil:
		return r.failedFinish(ctx, chatID, "mass status update", err)
	}

	report, err := r.h.MassUpdate.Handle(ctx, cmd)
	if err != nil {
		r.logger.Error("mass status update aborted", zap.Int("processed", len(report.Lines)), zap.Error(err))
		if len(report.Lines) == 0 {
			return r.finish(ctx, chatID, txtFailed, ports.SendOptions{})
		}
		return r.finish(ctx, chatID, massUpdateText(cmd.Status(), report)+"\n\n"+txtFailed, ports.SendOptions{})
	}
	return r.finish(ctx, chatID, massUpdateText(cmd.Status(), report), ports.SendOptions{})
}

func (r *Router) startAddressEdit(ctx context.Context, chatID int64, sess ports.Session, raw string) error {
	query, err := queries.NewFindAddressesByUsernamesQuery(raw)
	if err != nil {
		return r.send(ctx, chatID, txtAskEditUsername)
	}

	lines, err := r.h.FindAddresses.Handle(ctx, query)
	if err != nil {
		return r.failedFinish(ctx, chatID, "address lookup", err)
	}
	found := lines[0]
	if found.Address == nil {
		return r.send(ctx, chatID, fmt.Sprintf(txtAddressNotFound, found.Username)+"\n"+txtAskEditUsername)
	}

	sess.Buffer = map[string]string{
		bufUserID:   strconv.FormatInt(found.Address.UserID, 10),
		bufUsername: found.Username,
	}
	first := addressSteps[0]
	prompt := "@" + found.Username + "\n" + addressLines(*found.Address) + "\n\n" + first.ask
	return r.enter(ctx, chatID, sess, adminAddressPrefix+first.field, prompt, ports.SendOptions{})
}

func (r *Router) remindOrder(ctx context.Context, chatID int64, raw string) error {
	cmd, err := commands.NewRemindUnpaidForOrderCommand(raw)
	if err != nil {
		return r.send(ctx, chatID, txtAskRemindOrderID)
	}

	report, err := r.h.RemindOrder.Handle(ctx, cmd)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return r.finish(ctx, chatID, txtOrderMissing, ports.SendOptions{})
	case err != nil:
		return r.failedFinish(ctx, chatID, "remind unpaid", err)
	}
	return r.finish(ctx, chatID, reminderText(report), ports.SendOptions{})
}

func (r *Router) remindAll(ctx context.Context, chatID int64) error {
	batch, err := r.h.RemindAll.Handle(ctx)
	if err != nil {
		return r.failed(ctx, chatID, "remind all unpaid", err)
	}
	return r.send(ctx, chatID, batchReminderText(batch))
}

// adminButton handles adm:* tokens. notice is the callback answer text.
func (r *Router) adminButton(ctx context.Context, ev ButtonEvent, sess ports.Session, t Token, notice *string) error {
	chatID := ev.ChatID

	switch t.Action {
	case actPickStatus:
		if sess.Mode != modeAddOrderStatus {
			return r.send(ctx, chatID, txtStaleStatus)
		}
		status, ok := statusFromToken(t)
		if !ok {
			return r.send(ctx, chatID, txtStaleStatus)
		}
		sess.Buffer[bufStatus] = status.String()
		return r.enter(ctx, chatID, sess, modeAddOrderNote, txtAskNote, ports.SendOptions{})

	case actMassStatus:
		status, ok := statusFromToken(t)
		if !ok {
			return r.send(ctx, chatID, txtStaleStatus)
		}
		*notice = status.String()
		sess = ports.Session{Buffer: map[string]string{bufStatus: status.String()}}
		return r.enter(ctx, chatID, sess, modeMassStatusIDs, txtAskMassIDs, ports.SendOptions{})

	case actSetStatus:
		orderID := t.Arg(0)
		if orderID == "" {
			return r.send(ctx, chatID, txtOrderMissing)
		}
		sess = ports.Session{Buffer: map[string]string{bufOrderID: orderID}}
		return r.enter(ctx, chatID, sess, modeSetStatusPick, fmt.Sprintf(txtAskSetStatus, mdEscape(orderID)),
			ports.SendOptions{Markdown: true, Inline: statusKeyboard(actPickSetStatus)})

	case actPickSetStatus:
		orderID := sess.Buffer[bufOrderID]
		status, ok := statusFromToken(t)
		if sess.Mode != modeSetStatusPick || orderID == "" || !ok {
			return r.send(ctx, chatID, txtStaleStatus)
		}
		return r.setStatus(ctx, chatID, orderID, status)

	case actTogglePaid:
		return r.togglePaid(ctx, ev, t.Arg(0), t.Arg(1), notice)
	}

	r.logger.Warn("unknown admin action", zap.String("token", t.String()))
	return nil
}

func statusFromToken(t Token) (order.Status, bool) {
	idx, err := t.IntArg(0)
	if err != nil {
		return "", false
	}
	status, err := order.StatusAt(idx)
	if err != nil {
		return "", false
	}
	return status, true
}

func (r *Router) setStatus(ctx context.Context, chatID int64, orderID string, status order.Status) error {
	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return r.failedFinish(ctx, chatID, "set status", err)
	}

	res, err := r.h.UpdateStatus.Handle(ctx, cmd)
	switch {
	case err != nil:
		return r.failedFinish(ctx, chatID, "set status", err)
	case !res.Found:
		return r.finish(ctx, chatID, txtOrderMissing, ports.SendOptions{})
	}

	text := fmt.Sprintf("Статус заказа *%s* изменён на *%s*.\nУведомлено подписчиков: %d",
		mdEscape(cmd.OrderID()), mdEscape(status.String()), res.Notified.Sent())
	if failed := res.Notified.Failed(); failed > 0 {
		text += fmt.Sprintf(", ошибок: %d", failed)
	}
	return r.finish(ctx, chatID, text, ports.SendOptions{Markdown: true})
}

func (r *Router) togglePaid(ctx context.Context, ev ButtonEvent, orderID, username string, notice *string) error {
	cmd, err := commands.NewTogglePaidCommand(orderID, username)
	if err != nil {
		*notice = txtStaleStatus
		return nil
	}

	paid, found, err := r.h.TogglePaid.Handle(ctx, cmd)
	switch {
	case err != nil:
		return r.failed(ctx, ev.ChatID, "toggle paid", err)
	case !found:
		*notice = "Участник не найден"
		return nil
	case paid:
		*notice = "@" + cmd.Username() + ": оплачено"
	default:
		*notice = "@" + cmd.Username() + ": не оплачено"
	}

	query, err := queries.NewGetOrderQuery(orderID, 0)
	if err != nil {
		return nil
	}
	card, err := r.h.GetOrder.Handle(ctx, query)
	if err != nil {
		r.logger.Warn("reload order card", zap.String("order_id", orderID), zap.Error(err))
		return nil
	}
	r.editMarkup(ctx, ev.ChatID, ev.MessageID, adminCardKeyboard(card))
	return nil
}
