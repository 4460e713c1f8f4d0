package models

// BusinessSettings is the shop's singleton configuration document.
type BusinessSettings struct {
	Name            string   `json:"name" validate:"required,min=1,max=120"`
	Address         string   `json:"address"`
	Phone           string   `json:"phone"`
	Logo            string   `json:"logo"` // inline data URI
	DefaultCurrency Currency `json:"defaultCurrency" validate:"required,in=USD,HTG"`
	ConversionRate  float64  `json:"conversionRate" validate:"gt=0"` // 1 USD = X HTG
	ThankYouMessage string   `json:"thankYouMessage"`
	PrimaryColor    string   `json:"primaryColor" validate:"nullable,regex=^#[0-9a-fA-F]{6}$"`
	MonCashQR       string   `json:"moncashQr,omitempty"`
	NatCashQR       string   `json:"natcashQr,omitempty"`
}

// DefaultSettings returns the out-of-the-box shop configuration.
func DefaultSettings() BusinessSettings {
	return BusinessSettings{
		Name:            "Vendix POS",
		Address:         "Port-au-Prince, Haïti",
		Phone:           "+509 0000 0000",
		DefaultCurrency: HTG,
		ConversionRate:  130,
		ThankYouMessage: "Mèsi anpil! Thank you!",
		PrimaryColor:    "#2563eb",
	}
}
