package model

// Intent is the coarse category of a user request.
type Intent string

const (
	IntentProduct       Intent = "product"
	IntentPolicy        Intent = "policy"
	IntentCustomization Intent = "customization"
	IntentOther         Intent = "other"
)

func (i Intent) String() string {
	return string(i)
}
