package telegram

import "tracker/internal/core/ports"

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type keyboardButton struct {
	Text string `json:"text"`
}

type replyKeyboard struct {
	Keyboard       [][]keyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard"`
}

type removeKeyboard struct {
	RemoveKeyboard bool `json:"remove_keyboard"`
}

// replyMarkup picks the markup of opts; inline wins over reply.
func replyMarkup(opts ports.SendOptions) any {
	switch {
	case len(opts.Inline) > 0:
		return toInlineKeyboard(opts.Inline)
	case len(opts.Reply) > 0:
		rows := make([][]keyboardButton, 0, len(opts.Reply))
		for _, r := range opts.Reply {
			row := make([]keyboardButton, 0, len(r))
			for _, label := range r {
				row = append(row, keyboardButton{Text: label})
			}
			rows = append(rows, row)
		}
		return replyKeyboard{Keyboard: rows, ResizeKeyboard: true}
	case opts.RemoveKeyboard:
		return removeKeyboard{RemoveKeyboard: true}
	default:
		return nil
	}
}

func toInlineKeyboard(kb ports.InlineKeyboard) inlineKeyboard {
	rows := make([][]inlineButton, 0, len(kb))
	for _, r := range kb {
		row := make([]inlineButton, 0, len(r))
		for _, b := range r {
			row = append(row, inlineButton{Text: b.Text, CallbackData: b.Data})
		}
		rows = append(rows, row)
	}
	return inlineKeyboard{InlineKeyboard: rows}
}
