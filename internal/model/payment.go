package model

// PaymentChannel is the payment method chosen on the payment form.
type PaymentChannel string

const (
	ChannelCard PaymentChannel = "card"
	ChannelUPI  PaymentChannel = "upi"
)

// Valid reports whether c is a known channel.
func (c PaymentChannel) Valid() bool { return c == ChannelCard || c == ChannelUPI }

// PaymentForm holds the raw payment form values.  Card fields are ignored
// for UPI payments and UPIID is ignored for card payments.
type PaymentForm struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	UPIID          string `json:"upiId"`
}
