// Package validation содержит проверки пользовательского ввода.
package validation

import "strings"

// IsValidPhone проверяет алжирский номер мобильного телефона:
// десять цифр, начинающихся с 05, 06 или 07. Пробелы и дефисы,
// привычные при записи номера, игнорируются; международный префикс
// +213 или 00213 приводится к ведущему нулю. Телефон в заказе —
// свободный текст, поэтому проверка носит справочный характер и
// оформление заказа не блокирует.
func IsValidPhone(phone string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, phone)

	switch {
	case strings.HasPrefix(cleaned, "+213"):
		cleaned = "0" + cleaned[len("+213"):]
	case strings.HasPrefix(cleaned, "00213"):
		cleaned = "0" + cleaned[len("00213"):]
	}

	if len(cleaned) != 10 {
		return false
	}

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}

	if cleaned[0] != '0' {
		return false
	}

	switch cleaned[1] {
	case '5', '6', '7':
		return true
	}

	return false
}
