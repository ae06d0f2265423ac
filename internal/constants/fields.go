package constants

// Field names used as keys in validation results. They match the JSON field
// names of the task form so callers can render messages inline.
const (
	FieldTitle      = "titre"
	FieldStartDate  = "dateDebut"
	FieldDueDate    = "dateEcheance"
	FieldAssignees  = "assignesA"
	FieldProgress   = "pourcentageAvancement"
	FieldPriority   = "priorite"
	FieldStatus     = "statut"
	FieldOverlap    = "overlap"
	FieldProjectEnd = "dateFin"
	FieldTransition = "transition"
)
