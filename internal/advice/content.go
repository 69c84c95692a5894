// Package advice holds the static educational content. Entries are fixed
// text; there is no recommendation logic.
package advice

import (
	"github.com/mlefevre/diabecare/internal/domain"
)

var entries = []domain.Advice{
	{
		ID:    "1",
		Title: "Qu'est-ce que le diabète ?",
		Content: "Le diabète est une maladie chronique caractérisée par un niveau élevé " +
			"de glucose (sucre) dans le sang. Il survient lorsque le pancréas ne produit " +
			"pas assez d'insuline ou lorsque l'organisme n'utilise pas efficacement " +
			"l'insuline qu'il produit. Un suivi régulier de la glycémie permet de mieux " +
			"comprendre l'évolution de la maladie et d'adapter le traitement avec votre " +
			"médecin.",
		Category: domain.AdviceGeneral,
		ReadTime: 5,
	},
	{
		ID:    "2",
		Title: "Alimentation équilibrée",
		Content: "Une alimentation équilibrée est essentielle pour gérer votre diabète. " +
			"Privilégiez les légumes, les céréales complètes et les protéines maigres. " +
			"Limitez les sucres rapides et répartissez les glucides sur la journée pour " +
			"éviter les pics de glycémie. Mesurer votre glycémie avant et après les " +
			"repas aide à identifier les aliments qui vous conviennent.",
		Category: domain.AdviceNutrition,
		ReadTime: 8,
	},
	{
		ID:    "3",
		Title: "L'importance de l'exercice",
		Content: "L'activité physique régulière aide à contrôler la glycémie en " +
			"améliorant la sensibilité à l'insuline. Trente minutes de marche par jour " +
			"suffisent déjà à faire une différence. Pensez à mesurer votre glycémie " +
			"avant un effort prolongé et gardez une collation à portée de main en cas " +
			"d'hypoglycémie.",
		Category: domain.AdviceExercise,
		ReadTime: 6,
	},
	{
		ID:    "4",
		Title: "Gestion des médicaments",
		Content: "Prendre vos médicaments selon les prescriptions est crucial pour " +
			"maintenir une glycémie stable. Utilisez les rappels quotidiens pour ne pas " +
			"oublier une prise et notez tout effet inhabituel pour en parler à votre " +
			"médecin. Ne modifiez jamais un dosage sans avis médical.",
		Category: domain.AdviceMedication,
		ReadTime: 4,
	},
}

// All returns every advice entry.
func All() []domain.Advice {
	out := make([]domain.Advice, len(entries))
	copy(out, entries)
	return out
}

// ByID returns the entry with the given id, or nil.
func ByID(id string) *domain.Advice {
	for i := range entries {
		if entries[i].ID == id {
			a := entries[i]
			return &a
		}
	}
	return nil
}

// ByCategory returns the entries of one category.
func ByCategory(category domain.AdviceCategory) []domain.Advice {
	var out []domain.Advice
	for _, a := range entries {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// CategoryIcon maps a category to its display icon name.
func CategoryIcon(category domain.AdviceCategory) string {
	switch category {
	case domain.AdviceNutrition:
		return "restaurant"
	case domain.AdviceExercise:
		return "fitness"
	case domain.AdviceMedication:
		return "medical"
	case domain.AdviceGeneral:
		return "information-circle"
	default:
		return "book"
	}
}

// CategoryColor maps a category to its display color.
func CategoryColor(category domain.AdviceCategory) string {
	switch category {
	case domain.AdviceNutrition:
		return "#f59e0b"
	case domain.AdviceExercise:
		return "#22c55e"
	case domain.AdviceMedication:
		return "#ef4444"
	case domain.AdviceGeneral:
		return "#3b82f6"
	default:
		return "#6b7280"
	}
}
