package conversation

import (
	"context"
	"errors"
	"strings"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/application/usecases/queries"
	"tracker/internal/core/ports"
	"tracker/internal/pkg/errs"

	"go.uber.org/zap"
)

func (r *Router) customerText(ctx context.Context, ev TextEvent, sess ports.Session, raw, key string) error {
	chatID := ev.ChatID

	switch key {
	case strings.ToLower(btnTrack):
		return r.start(ctx, chatID, modeTrack, txtAskTrack, ports.SendOptions{})
	case strings.ToLower(btnMyAddresses):
		_ = r.clear(ctx, chatID)
		return r.showAddress(ctx, ev.ChatID, ev.SenderID)
	case strings.ToLower(btnSubscriptions):
		_ = r.clear(ctx, chatID)
		return r.showSubscriptions(ctx, ev.ChatID, ev.SenderID)
	}

	if idx, ok := addressStepOf(sess.Mode, customerAddressPrefix); ok {
		target := addressTarget{userID: ev.SenderID, username: ev.Username, menu: mainKeyboard}
		return r.addressWizardStep(ctx, chatID, sess, customerAddressPrefix, idx, raw, target)
	}

	if sess.Mode == modeTrack || (sess.Mode == "" && looksLikeOrderID(raw)) {
		return r.track(ctx, ev, raw)
	}

	return r.sendWith(ctx, chatID, txtUnknown, ports.SendOptions{Reply: mainKeyboard})
}

// track shows the status card. An unknown id keeps the track mode so the
// user can retype it.
func (r *Router) track(ctx context.Context, ev TextEvent, raw string) error {
	query, err := queries.NewGetOrderQuery(raw, ev.SenderID)
	if err != nil {
		return r.send(ctx, ev.ChatID, txtAskTrack)
	}

	card, err := r.h.GetOrder.Handle(ctx, query)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return r.send(ctx, ev.ChatID, txtTrackNotFound)
	case err != nil:
		return r.failed(ctx, ev.ChatID, "track order", err)
	}

	return r.finish(ctx, ev.ChatID, customerCard(card), ports.SendOptions{
		Markdown: true,
		Inline:   subscribeKeyboard(card.ID, card.Subscribed),
	})
}

func (r *Router) showAddress(ctx context.Context, chatID, userID int64) error {
	query, err := queries.NewGetAddressQuery(userID)
	if err != nil {
		return r.failed(ctx, chatID, "show address", err)
	}

	view, err := r.h.GetAddress.Handle(ctx, query)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return r.sendWith(ctx, chatID, txtNoAddress, ports.SendOptions{Inline: addAddressKeyboard()})
	case err != nil:
		return r.failed(ctx, chatID, "show address", err)
	}

	text := "Ваш адрес доставки:\n• " + strings.Join([]string{
		view.FullName, view.Phone, view.City, view.Street, view.Postcode,
	}, ", ")
	return r.sendWith(ctx, chatID, text, ports.SendOptions{Inline: editAddressKeyboard()})
}

func (r *Router) showSubscriptions(ctx context.Context, chatID, userID int64) error {
	query, err := queries.NewListSubscriptionsQuery(userID)
	if err != nil {
		return r.failed(ctx, chatID, "list subscriptions", err)
	}

	views, err := r.h.ListSubscriptions.Handle(ctx, query)
	if err != nil {
		return r.failed(ctx, chatID, "list subscriptions", err)
	}
	if len(views) == 0 {
		return r.send(ctx, chatID, txtNoSubscriptions)
	}

	text, kb := subscriptionsText(views)
	return r.sendWith(ctx, chatID, text, ports.SendOptions{Inline: kb})
}

func (r *Router) subscribeButton(ctx context.Context, ev ButtonEvent, orderID string) error {
	cmd, err := commands.NewSubscribeCommand(ev.SenderID, orderID)
	if err != nil {
		r.logger.Warn("bad subscribe button", zap.String("order_id", orderID), zap.Error(err))
		return nil
	}
	if err := r.h.Subscribe.Handle(ctx, cmd); err != nil {
		return r.failed(ctx, ev.ChatID, "subscribe", err)
	}

	r.editMarkup(ctx, ev.ChatID, ev.MessageID, subscribeKeyboard(cmd.OrderID(), true))
	return r.send(ctx, ev.ChatID, txtSubscribed)
}

func (r *Router) unsubscribeButton(ctx context.Context, ev ButtonEvent, orderID string) error {
	cmd, err := commands.NewSubscribeCommand(ev.SenderID, orderID)
	if err != nil {
		r.logger.Warn("bad unsubscribe button", zap.String("order_id", orderID), zap.Error(err))
		return nil
	}
	removed, err := r.h.Unsubscribe.Handle(ctx, cmd)
	if err != nil {
		return r.failed(ctx, ev.ChatID, "unsubscribe", err)
	}

	text := txtNotSubscribed
	if removed {
		text = txtUnsubscribed
	}
	if err := r.send(ctx, ev.ChatID, text); err != nil {
		return err
	}
	r.editMarkup(ctx, ev.ChatID, ev.MessageID, subscribeKeyboard(cmd.OrderID(), false))
	return nil
}

func (r *Router) addressButton(ctx context.Context, ev ButtonEvent, t Token) error {
	switch t.Action {
	case actAddressAdd:
		first := addressSteps[0]
		return r.start(ctx, ev.ChatID, customerAddressPrefix+first.field, first.ask, ports.SendOptions{})

	case actAddressDel:
		removed, err := r.h.DeleteAddress.Handle(ctx, ev.SenderID)
		if err != nil {
			return r.failed(ctx, ev.ChatID, "delete address", err)
		}
		if removed {
			return r.send(ctx, ev.ChatID, txtAddressDeleted)
		}
		return r.send(ctx, ev.ChatID, txtNothingToDelete)
	}

	r.logger.Warn("unknown address action", zap.String("token", t.String()))
	return nil
}
