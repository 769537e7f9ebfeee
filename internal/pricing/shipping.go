// Package pricing содержит тарифную таблицу доставки по вилайям Алжира.
package pricing

// DefaultWilaya используется формой оформления заказа, пока покупатель
// не выбрал другую вилайю.
const DefaultWilaya = "16 - الجزائر"

// defaultFee применяется для вилайи, отсутствующей в таблице.
const defaultFee int64 = 800

// Идентификатор вилайи должен совпадать с ключом таблицы байт в байт,
// нормализация не выполняется.
var shippingFees = map[string]int64{
	"02 - الشلف":         700,
	"03 - الأغواط":       900,
	"04 - أم البواقي":    750,
	"05 - باتنة":         750,
	"06 - بجاية":         750,
	"07 - بسكرة":         850,
	"09 - البليدة":       600,
	"10 - البويرة":       700,
	"12 - تبسة":          800,
	"13 - تلمسان":        750,
	"14 - تيارت":         750,
	"15 - تيزي وزو":      700,
	"16 - الجزائر":       450,
	"17 - الجلفة":        850,
	"18 - جيجل":          750,
	"19 - سطيف":          700,
	"20 - سعيدة":         800,
	"21 - سكيكدة":        750,
	"22 - سيدي بلعباس":   750,
	"23 - عنابة":         750,
	"24 - قالمة":         800,
	"25 - قسنطينة":       700,
	"26 - المدية":        700,
	"27 - مستغانم":       750,
	"28 - المسيلة":       750,
	"29 - معسكر":         800,
	"30 - ورقلة":         950,
	"31 - وهران":         700,
	"32 - البيض":         1000,
	"34 - برج بوعريريج":  700,
	"35 - بومرداس":       650,
	"36 - الطارف":        850,
	"39 - الوادي":        900,
	"40 - خنشلة":         800,
	"41 - سوق أهراس":     800,
	"42 - تيبازة":        650,
	"43 - ميلة":          750,
	"44 - عين الدفلى":    700,
	"45 - النعامة":       850,
	"46 - عين تموشنت":    750,
	"47 - غرداية":        950,
	"48 - غليزان":        750,
	"51 - أولاد جلال":    950,
	"55 - تقرت":          950,
	"57 - المغير":        950,
	"58 - المنيعة":       950,
}

// CostFor возвращает стоимость доставки для указанной вилайи.
// Для неизвестной вилайи возвращается тариф по умолчанию.
func CostFor(wilaya string) int64 {
	if fee, ok := shippingFees[wilaya]; ok {
		return fee
	}
	return defaultFee
}

// DefaultFee возвращает тариф по умолчанию.
func DefaultFee() int64 {
	return defaultFee
}

// Wilayas возвращает список всех вилай, присутствующих в таблице.
func Wilayas() []string {
	res := make([]string, 0, len(shippingFees))
	for w := range shippingFees {
		res = append(res, w)
	}
	return res
}
