package store

import "github.com/amstore/amstore-system/internal/model"

// SeedProducts возвращает стартовый каталог, которым наполняется пустое
// хранилище при первом запуске магазина.
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "ساعة رولكس صبمارينر",
			Price:       45000,
			Description: "ساعة غوص كلاسيكية فاخرة بقرص أسود وإطار سيراميك متين. دقة متناهية وتصميم خالد.",
			Color:       "فضي / أسود",
			Image:       "https://images.unsplash.com/photo-1542496658-e33a6d0d50f6?q=80&w=1000&auto=format&fit=crop",
			Category:    "Luxury",
		},
		{
			ID:          "2",
			Name:        "باتيك فيليب نوتيلوس",
			Price:       52000,
			Description: "تصميم رياضي أنيق بلمسة عصرية. مثالية للمناسبات الرسمية واليومية.",
			Color:       "فضي / أزرق",
			Image:       "https://images.unsplash.com/photo-1614164185128-e4ec99c436d7?q=80&w=1000&auto=format&fit=crop",
			Category:    "Sport",
		},
		{
			ID:          "3",
			Name:        "أوديمار بيجيه رويال أوك",
			Price:       38000,
			Description: "ساعة مميزة بإطارها المثمن الشهير، تعكس القوة والأناقة في آن واحد.",
			Color:       "أسود مطفي",
			Image:       "https://images.unsplash.com/photo-1547996160-81dfa63595aa?q=80&w=1000&auto=format&fit=crop",
			Category:    "Classic",
		},
	}
}
