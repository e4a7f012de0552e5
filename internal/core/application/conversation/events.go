package conversation

import (
	"fmt"
	"strconv"
	"strings"

	"tracker/internal/pkg/errs"
)

// TextEvent is an inbound text message.
type TextEvent struct {
	ChatID    int64
	SenderID  int64
	Username  string
	FirstName string
	Text      string
}

// ButtonEvent is an inbound inline button press.
type ButtonEvent struct {
	ChatID     int64
	SenderID   int64
	Username   string
	CallbackID string
	MessageID  int
	Token      string
}

// Button token namespaces and actions.
const (
	nsSubscribe   = "sub"
	nsUnsubscribe = "unsub"
	nsAddress     = "addr"
	nsAdmin       = "adm"

	actAddressAdd = "add"
	actAddressDel = "del"

	actPickStatus    = "pick_status_id"
	actMassStatus    = "mass_status"
	actSetStatus     = "set_status"
	actPickSetStatus = "pick_set_status"
	actTogglePaid    = "toggle_paid"
)

// Token is a parsed button token of the form namespace:action:args. The sub
// and unsub namespaces carry no action: "sub:<order id>".
type Token struct {
	Namespace string
	Action    string
	Args      []string
}

// ParseToken splits raw on ':'.
func ParseToken(raw string) (Token, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || parts[0] == "" {
		return Token{}, errs.NewValueIsInvalidErrorWithCause("token", fmt.Errorf("%q has no namespace", raw))
	}

	t := Token{Namespace: parts[0]}
	switch t.Namespace {
	case nsSubscribe, nsUnsubscribe:
		t.Args = parts[1:]
	default:
		t.Action = parts[1]
		t.Args = parts[2:]
	}
	return t, nil
}

// Arg returns the i-th argument or "".
func (t Token) Arg(i int) string {
	if i < 0 || i >= len(t.Args) {
		return ""
	}
	return t.Args[i]
}

// IntArg parses the i-th argument as an index.
func (t Token) IntArg(i int) (int, error) {
	v, err := strconv.Atoi(t.Arg(i))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("token", err)
	}
	return v, nil
}

func (t Token) String() string {
	parts := []string{t.Namespace}
	if t.Action != "" {
		parts = append(parts, t.Action)
	}
	return strings.Join(append(parts, t.Args...), ":")
}

func subscribeToken(orderID string) string {
	return Token{Namespace: nsSubscribe, Args: []string{orderID}}.String()
}

func unsubscribeToken(orderID string) string {
	return Token{Namespace: nsUnsubscribe, Args: []string{orderID}}.String()
}

func adminToken(action string, args ...string) string {
	return Token{Namespace: nsAdmin, Action: action, Args: args}.String()
}

func addressToken(action string) string {
	return Token{Namespace: nsAddress, Action: action}.String()
}
