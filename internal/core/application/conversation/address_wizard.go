package conversation

import (
	"context"
	"strconv"

	"tracker/internal/core/application/usecases/commands"
	"tracker/internal/core/ports"
)

// addressTarget is whose address the wizard is collecting.
type addressTarget struct {
	userID   int64
	username string
	menu     ports.ReplyKeyboard
}

// addressWizardStep handles one answer of the address wizard. The last step
// saves the address for target.
func (r *Router) addressWizardStep(
	ctx context.Context,
	chatID int64,
	sess ports.Session,
	prefix string,
	idx int,
	raw string,
	target addressTarget,
) error {
	step := addressSteps[idx]
	v, err := step.normalize(raw)
	if err != nil {
		return r.send(ctx, chatID, step.bad)
	}

	if sess.Buffer == nil {
		sess.Buffer = map[string]string{}
	}
	sess.Buffer[step.field] = v

	if idx+1 < len(addressSteps) {
		next := addressSteps[idx+1]
		return r.enter(ctx, chatID, sess, prefix+next.field, next.ask, ports.SendOptions{})
	}

	cmd, err := commands.NewSaveAddressCommand(target.userID, target.username, commands.AddressFields{
		FullName: sess.Buffer[fieldFullName],
		Phone:    sess.Buffer[fieldPhone],
		City:     sess.Buffer[fieldCity],
		Street:   sess.Buffer[fieldStreet],
		Postcode: sess.Buffer[fieldPostcode],
	})
	if err != nil {
		return r.failedFinish(ctx, chatID, "save address", err)
	}

	res, err := r.h.SaveAddress.Handle(ctx, cmd)
	if err != nil {
		return r.failedFinish(ctx, chatID, "save address", err)
	}
	return r.finish(ctx, chatID, addressSavedText(res), ports.SendOptions{Reply: target.menu})
}

// adminAddressTarget reads the user the admin is editing from the buffer.
func adminAddressTarget(sess ports.Session) (addressTarget, bool) {
	id, err := strconv.ParseInt(sess.Buffer[bufUserID], 10, 64)
	if err != nil || id == 0 {
		return addressTarget{}, false
	}
	return addressTarget{userID: id, username: sess.Buffer[bufUsername], menu: adminKeyboard}, true
}
