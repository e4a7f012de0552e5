package conversation

import (
	"strings"

	"tracker/internal/core/domain/model/address"
	"tracker/internal/pkg/errs"
)

// Session modes. Admin modes share the adminModePrefix.
const (
	adminModePrefix = "adm_"

	modeAddOrderID      = "adm_add_order_id"
	modeAddOrderClient  = "adm_add_order_client"
	modeAddOrderCountry = "adm_add_order_country"
	modeAddOrderStatus  = "adm_add_order_status"
	modeAddOrderNote    = "adm_add_order_note"
	modeFindOrder       = "adm_find_order"
	modeMassStatusPick  = "adm_mass_status_pick"
	modeMassStatusIDs   = "adm_mass_status_ids"
	modeSetStatusPick   = "adm_set_status_pick"
	modeAddrUsernames   = "adm_addr_usernames"
	modeEditAddrUser    = "adm_edit_addr_username"
	modeRemindOrder     = "adm_remind_unpaid_order"

	modeTrack = "track"

	// Address wizard modes are a prefix plus the field being asked.
	customerAddressPrefix = "addr_"
	adminAddressPrefix    = "adm_edit_addr_"
)

// Buffer keys.
const (
	bufOrderID    = "order_id"
	bufClientName = "client_name"
	bufCountry    = "country"
	bufStatus     = "status"
	bufUserID     = "user_id"
	bufUsername   = "username"

	fieldFullName = "full_name"
	fieldPhone    = "phone"
	fieldCity     = "city"
	fieldStreet   = "address"
	fieldPostcode = "postcode"
)

func isAdminMode(mode string) bool {
	return strings.HasPrefix(mode, adminModePrefix)
}

type addressStep struct {
	field     string
	ask       string
	bad       string
	normalize func(string) (string, error)
}

// addressSteps is the address wizard, in order.
var addressSteps = []addressStep{
	{field: fieldFullName, ask: txtAskFullName, bad: txtBadFullName, normalize: requireText(fieldFullName)},
	{field: fieldPhone, ask: txtAskPhone, bad: txtBadPhone, normalize: address.NormalizePhone},
	{field: fieldCity, ask: txtAskCity, bad: txtBadCity, normalize: requireText(fieldCity)},
	{field: fieldStreet, ask: txtAskStreet, bad: txtBadStreet, normalize: requireText(fieldStreet)},
	{field: fieldPostcode, ask: txtAskPostcode, bad: txtBadPostcode, normalize: address.ValidatePostcode},
}

// addressStepOf finds the wizard step encoded in mode for the given prefix.
func addressStepOf(mode, prefix string) (int, bool) {
	field, ok := strings.CutPrefix(mode, prefix)
	if !ok {
		return 0, false
	}
	for i, s := range addressSteps {
		if s.field == field {
			return i, true
		}
	}
	return 0, false
}

func requireText(param string) func(string) (string, error) {
	return func(raw string) (string, error) {
		v := strings.TrimSpace(raw)
		if v == "" {
			return "", errs.NewValueIsRequiredError(param)
		}
		return v, nil
	}
}
