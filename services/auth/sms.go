package auth

import "homeserve/utils"

// SMSSender delivers OTP messages to a phone number. Swap in a real gateway
// integration in production.
type SMSSender interface {
	Send(phoneNumber, message string) error
}

// LogSMSSender logs outgoing messages instead of delivering them. Used in
// development and standalone mode.
type LogSMSSender struct{}

func (LogSMSSender) Send(phoneNumber, message string) error {
	utils.GetLogger().Sugar().Infof("Sending SMS to %s: %s", phoneNumber, message)
	return nil
}
