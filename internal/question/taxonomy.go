package question

// Specialties is the known specialty taxonomy for question categories.
// Bank files may only use categories from this list.
var Specialties = []string{
	"Cardiología",
	"Cirugía General",
	"Dermatología",
	"Endocrinología",
	"Gastroenterología",
	"Ginecología y Obstetricia",
	"Infectología",
	"Medicina Familiar",
	"Medicina Interna",
	"Nefrología",
	"Neumología",
	"Neurología",
	"Oftalmología",
	"Ortopedia",
	"Pediatría",
	"Psiquiatría",
	"Urgencias Médicas",
	"Urología",
}

// examFocused marks the specialties with the heaviest exam weighting.
// Questions in these categories get a recommendation boost.
var examFocused = map[string]bool{
	"Cirugía General":           true,
	"Ginecología y Obstetricia": true,
	"Medicina Interna":          true,
	"Pediatría":                 true,
	"Urgencias Médicas":         true,
}

var specialtySet = func() map[string]bool {
	set := make(map[string]bool, len(Specialties))
	for _, s := range Specialties {
		set[s] = true
	}
	return set
}()

// KnownSpecialty reports whether name is part of the specialty taxonomy.
func KnownSpecialty(name string) bool {
	return specialtySet[name]
}

// ExamFocused reports whether the category carries a high exam weighting.
func ExamFocused(category string) bool {
	return examFocused[category]
}
