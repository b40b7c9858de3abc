package checkout

import (
	"regexp"
	"strings"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

// Bangladeshi mobile numbers: optional +88/88 country code, then 01, then a
// second digit 3-9, then eight more digits.
var phonePattern = regexp.MustCompile(`^(?:\+88|88)?(01[3-9]\d{8})$`)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateCustomerInfo collects every form problem before any remote call is
// made. An empty slice means the form is good.
func ValidateCustomerInfo(info models.CustomerInfo) []string {
	var messages []string

	if strings.TrimSpace(info.Name) == "" {
		messages = append(messages, "নাম আবশ্যক")
	}

	phone := strings.TrimSpace(info.Phone)
	if phone == "" {
		messages = append(messages, "মোবাইল নম্বর আবশ্যক")
	} else if !ValidPhone(phone) {
		messages = append(messages, "সঠিক মোবাইল নম্বর দিন (01XXXXXXXXX)")
	}

	if strings.TrimSpace(info.Address) == "" {
		messages = append(messages, "ঠিকানা আবশ্যক")
	}

	return messages
}
