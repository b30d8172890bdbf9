package entities

// PaymentMethodType selects the payment rail for a charge.

type PaymentMethodType string

const (
	PaymentMethodCredit PaymentMethodType = "credit"
	PaymentMethodDebit  PaymentMethodType = "debit"
	PaymentMethodPix    PaymentMethodType = "pix"
)

// Address is the customer billing address sent to providers that require it.
type Address struct {
	Street     string `json:"street,omitempty"`
	Number     string `json:"number,omitempty"`
	Complement string `json:"complement,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	ZipCode    string `json:"zip_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Customer identifies the paying customer. Document is the CPF/CNPJ.
type Customer struct {
	Name     string  `json:"name"`
	Document string  `json:"document"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Address  Address `json:"address,omitempty"`
}

// PaymentMethod describes how the customer pays.
//
// For card rails either the raw card fields or a previously issued
// CardToken must be present; providers that require a tokenization step
// receive the raw fields and charge with the resulting token. For pix no
// card data is used.
type PaymentMethod struct {
	Type           PaymentMethodType `json:"type"`
	CardNumber     string            `json:"card_number,omitempty"`
	CardHolder     string            `json:"card_holder,omitempty"`
	CardExpiration string            `json:"card_expiration,omitempty"` // MM/YYYY
	CardBrand      string            `json:"card_brand,omitempty"`
	SecurityCode   string            `json:"security_code,omitempty"`
	CardToken      string            `json:"card_token,omitempty"`
}

// ChargeRequest is the internal charge model handed to the orchestrator.
//
// Amount is the order total in minor units before interest. When
// Installments > 1 the caller also submits InstallmentTotal (the
// with-interest total it showed the customer) which is validated against
// the locally computed installment table before any network call.
type ChargeRequest struct {
	OrderID          string        `json:"order_id"`
	Amount           int64         `json:"amount"`
	Currency         string        `json:"currency"`
	Provider         string        `json:"provider"`
	Description      string        `json:"description,omitempty"`
	Customer         Customer      `json:"customer"`
	Method           PaymentMethod `json:"payment_method"`
	Installments     int           `json:"installments"`
	InstallmentTotal int64         `json:"installment_total,omitempty"`
}
