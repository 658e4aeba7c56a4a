package activity

import "fmt"

// Zone IDs for activity page mouse targets:
// - Package cards: package:{index}
// - Form package options: option:{index}
// - Inputs and the submit button: fixed IDs

const (
	zonePackagePrefix = "package:"
	zoneOptionPrefix  = "option:"
	zoneNameInput     = "input:name"
	zonePhoneInput    = "input:phone"
	zoneSubmitButton  = "submit"
)

func makePackageZoneID(index int) string {
	return fmt.Sprintf("%s%d", zonePackagePrefix, index)
}

func makeOptionZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneOptionPrefix, index)
}
