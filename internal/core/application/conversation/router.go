package conversation

import (
	"context"
	"strings"

	"tracker/internal/core/domain/model/kernel"
	"tracker/internal/core/ports"

	"go.uber.org/zap"
)

// Router is the conversation state machine. It is safe for concurrent use as
// long as the session store is; events of one chat are expected in order.
type Router struct {
	h         Handlers
	sessions  ports.SessionStore
	messenger ports.Messenger
	admins    map[int64]struct{}
	logger    *zap.Logger
}

func NewRouter(
	h Handlers,
	sessions ports.SessionStore,
	messenger ports.Messenger,
	adminIDs []int64,
	logger *zap.Logger,
) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}

	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Router{
		h:         h,
		sessions:  sessions,
		messenger: messenger,
		admins:    admins,
		logger:    logger.With(zap.String("component", "conversation")),
	}
}

func (r *Router) IsAdmin(userID int64) bool {
	_, ok := r.admins[userID]
	return ok
}

// HandleText routes one text message. The returned error is a failed reply;
// use case failures are reported to the chat and logged.
func (r *Router) HandleText(ctx context.Context, ev TextEvent) error {
	raw := strings.TrimSpace(ev.Text)
	key := strings.ToLower(raw)
	if raw == "" {
		return r.sendWith(ctx, ev.ChatID, txtUnknown, ports.SendOptions{Reply: mainKeyboard})
	}

	sess, err := r.load(ctx, ev.ChatID)
	if err != nil {
		return r.send(ctx, ev.ChatID, txtFailed)
	}

	if _, ok := cancelKeywords[key]; ok {
		return r.cancel(ctx, ev, sess)
	}

	if name, ok := parseCommand(raw); ok {
		switch name {
		case "start":
			return r.Start(ctx, ev)
		case "help":
			return r.Help(ctx, ev)
		case "admin":
			return r.Admin(ctx, ev)
		}
	}

	if r.IsAdmin(ev.SenderID) {
		if handled, err := r.adminText(ctx, ev, sess, raw, key); handled {
			return err
		}
	}
	return r.customerText(ctx, ev, sess, raw, key)
}

// HandleButton routes one button press. The press is always acknowledged.
func (r *Router) HandleButton(ctx context.Context, ev ButtonEvent) error {
	notice := ""
	defer func() {
		if err := r.messenger.AnswerCallback(ctx, ev.CallbackID, notice); err != nil {
			r.logger.Warn("answer callback", zap.String("callback_id", ev.CallbackID), zap.Error(err))
		}
	}()

	token, err := ParseToken(ev.Token)
	if err != nil {
		r.logger.Warn("unknown button", zap.String("token", ev.Token), zap.Error(err))
		return nil
	}

	sess, err := r.load(ctx, ev.ChatID)
	if err != nil {
		return r.send(ctx, ev.ChatID, txtFailed)
	}

	switch token.Namespace {
	case nsSubscribe:
		return r.subscribeButton(ctx, ev, token.Arg(0))
	case nsUnsubscribe:
		return r.unsubscribeButton(ctx, ev, token.Arg(0))
	case nsAddress:
		return r.addressButton(ctx, ev, token)
	case nsAdmin:
		if !r.IsAdmin(ev.SenderID) {
			r.logger.Warn("admin button from non-admin", zap.Int64("user_id", ev.SenderID))
			return nil
		}
		return r.adminButton(ctx, ev, sess, token, &notice)
	default:
		r.logger.Warn("unknown button namespace", zap.String("token", ev.Token))
		return nil
	}
}

// Start greets the user with the customer menu.
func (r *Router) Start(ctx context.Context, ev TextEvent) error {
	return r.sendWith(ctx, ev.ChatID, txtStart, ports.SendOptions{Reply: mainKeyboard})
}

func (r *Router) Help(ctx context.Context, ev TextEvent) error {
	return r.send(ctx, ev.ChatID, txtHelp)
}

// Admin opens the admin panel and drops any unfinished wizard. Non-admins are ignored.
func (r *Router) Admin(ctx context.Context, ev TextEvent) error {
	if !r.IsAdmin(ev.SenderID) {
		return nil
	}
	return r.adminMenu(ctx, ev.ChatID)
}

func (r *Router) cancel(ctx context.Context, ev TextEvent, sess ports.Session) error {
	if err := r.clear(ctx, ev.ChatID); err != nil {
		return r.send(ctx, ev.ChatID, txtFailed)
	}

	kb := mainKeyboard
	if isAdminMode(sess.Mode) && r.IsAdmin(ev.SenderID) {
		kb = adminKeyboard
	}
	return r.sendWith(ctx, ev.ChatID, txtCancelled, ports.SendOptions{Reply: kb})
}

func (r *Router) adminMenu(ctx context.Context, chatID int64) error {
	if err := r.clear(ctx, chatID); err != nil {
		return r.send(ctx, chatID, txtFailed)
	}
	return r.sendWith(ctx, chatID, txtAdminMenu, ports.SendOptions{Reply: adminKeyboard})
}

// parseCommand recognizes "/name", "/name@bot" and "/name payload".
func parseCommand(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "/") {
		return "", false
	}
	name := strings.Fields(raw[1:])
	if len(name) == 0 {
		return "", false
	}
	cmd, _, _ := strings.Cut(name[0], "@")
	return strings.ToLower(cmd), true
}

// looksLikeOrderID reports whether free text carries an order id.
func looksLikeOrderID(raw string) bool {
	_, ok := kernel.ExtractOrderID(raw)
	return ok
}

// load returns the session of chatID with a non-nil buffer.
func (r *Router) load(ctx context.Context, chatID int64) (ports.Session, error) {
	sess, err := r.sessions.Get(ctx, chatID)
	if err != nil {
		r.logger.Error("load session", zap.Int64("chat_id", chatID), zap.Error(err))
		return ports.Session{}, err
	}
	if sess.Buffer == nil {
		sess.Buffer = map[string]string{}
	}
	return sess, nil
}

func (r *Router) save(ctx context.Context, chatID int64, sess ports.Session) error {
	if err := r.sessions.Save(ctx, chatID, sess); err != nil {
		r.logger.Error("save session", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}

func (r *Router) clear(ctx context.Context, chatID int64) error {
	if err := r.sessions.Clear(ctx, chatID); err != nil {
		r.logger.Error("clear session", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}

// enter switches the session to mode and sends its prompt.
func (r *Router) enter(ctx context.Context, chatID int64, sess ports.Session, mode, prompt string, opts ports.SendOptions) error {
	sess.Mode = mode
	if sess.Buffer == nil {
		sess.Buffer = map[string]string{}
	}
	if err := r.save(ctx, chatID, sess); err != nil {
		return r.send(ctx, chatID, txtFailed)
	}
	return r.sendWith(ctx, chatID, prompt, opts)
}

// start begins a wizard at mode with an empty buffer.
func (r *Router) start(ctx context.Context, chatID int64, mode, prompt string, opts ports.SendOptions) error {
	return r.enter(ctx, chatID, ports.Session{}, mode, prompt, opts)
}

// finish clears the session and sends the outcome of a terminal step.
func (r *Router) finish(ctx context.Context, chatID int64, text string, opts ports.SendOptions) error {
	_ = r.clear(ctx, chatID)
	return r.sendWith(ctx, chatID, text, opts)
}

func (r *Router) send(ctx context.Context, chatID int64, text string) error {
	return r.sendWith(ctx, chatID, text, ports.SendOptions{})
}

func (r *Router) sendWith(ctx context.Context, chatID int64, text string, opts ports.SendOptions) error {
	return r.messenger.SendMessage(ctx, chatID, text, opts)
}

func (r *Router) editMarkup(ctx context.Context, chatID int64, messageID int, kb ports.InlineKeyboard) {
	if messageID == 0 {
		return
	}
	if err := r.messenger.EditReplyMarkup(ctx, chatID, messageID, kb); err != nil {
		r.logger.Debug("edit reply markup", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// failed logs a use case error and tells the chat that the operation failed.
func (r *Router) failed(ctx context.Context, chatID int64, op string, err error) error {
	r.logger.Error(op+" failed", zap.Int64("chat_id", chatID), zap.Error(err))
	return r.send(ctx, chatID, txtFailed)
}

// failedFinish is failed for terminal steps: the session is cleared as well.
func (r *Router) failedFinish(ctx context.Context, chatID int64, op string, err error) error {
	r.logger.Error(op+" failed", zap.Int64("chat_id", chatID), zap.Error(err))
	return r.finish(ctx, chatID, txtFailed, ports.SendOptions{})
}
