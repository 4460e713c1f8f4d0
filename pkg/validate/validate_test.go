package validate

import "testing"

type productInput struct {
	Name  string  `json:"name"  validate:"required,min=1,max=10"`
	Price float64 `json:"price" validate:"gte=0"`
	Stock int     `json:"stock" validate:"gte=0"`
}

type settingsInput struct {
	Currency string  `json:"currency" validate:"required,in=USD,HTG"`
	Rate     float64 `json:"rate"     validate:"gt=0"`
	Color    string  `json:"color"    validate:"nullable,regex=^#[0-9a-fA-F]{6}$"`
}

func TestStructValid(t *testing.T) {
	errs := Struct(productInput{Name: "Riz 5lb", Price: 650, Stock: 4})
	if HasErrors(errs) {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestRequired(t *testing.T) {
	errs := Struct(productInput{Price: 10})
	if errs["name"] != "The name field is required." {
		t.Errorf("name error = %q", errs["name"])
	}
}

func TestNumericBounds(t *testing.T) {
	errs := Struct(productInput{Name: "Savon", Price: -1, Stock: -3})
	if errs["price"] == "" {
		t.Error("negative price passed gte=0")
	}
	if errs["stock"] == "" {
		t.Error("negative stock passed gte=0")
	}

	errs = Struct(settingsInput{Currency: "HTG", Rate: 0})
	if errs["rate"] == "" {
		t.Error("zero rate passed gt=0")
	}
}

func TestStringLength(t *testing.T) {
	errs := Struct(productInput{Name: "much too long a name"})
	if errs["name"] != "The name field must not exceed 10 characters." {
		t.Errorf("name error = %q", errs["name"])
	}
}

// in= parameter lists contain commas; the tag splitter must keep them whole.
func TestInRule(t *testing.T) {
	errs := Struct(settingsInput{Currency: "EUR", Rate: 130})
	if errs["currency"] != "The currency field must be one of: USD, HTG." {
		t.Errorf("currency error = %q", errs["currency"])
	}

	errs = Struct(settingsInput{Currency: "USD", Rate: 130})
	if errs["currency"] != "" {
		t.Errorf("USD rejected: %q", errs["currency"])
	}
}

func TestRegexRule(t *testing.T) {
	errs := Struct(settingsInput{Currency: "HTG", Rate: 130, Color: "blue"})
	if errs["color"] != "The color field format is invalid." {
		t.Errorf("color error = %q", errs["color"])
	}

	errs = Struct(settingsInput{Currency: "HTG", Rate: 130, Color: "#2563eb"})
	if errs["color"] != "" {
		t.Errorf("hex color rejected: %q", errs["color"])
	}
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := Struct(settingsInput{Currency: "HTG", Rate: 130})
	if errs["color"] != "" {
		t.Errorf("empty nullable field flagged: %q", errs["color"])
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	errs := Struct(productInput{Name: ""})
	// required fires before min; only one message per field.
	if errs["name"] != "The name field is required." {
		t.Errorf("name error = %q", errs["name"])
	}
}

func TestNonStructInput(t *testing.T) {
	if HasErrors(Struct(42)) {
		t.Error("non-struct input produced errors")
	}
	p := &productInput{Name: "ok"}
	if HasErrors(Struct(p)) {
		t.Error("pointer to valid struct produced errors")
	}
}
