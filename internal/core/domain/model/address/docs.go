// Package address provides the delivery Address a customer registers with the bot.
//
// One address is kept per transport user id. Operators look addresses up by
// username when shipping, so the username is stored normalized. Phone numbers
// and postcodes are validated when the customer enters them; rows restored
// from storage are taken as they are.
package address
