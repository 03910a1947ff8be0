package formaterror

import (
	"errors"

	"Litreview/api/models"
)

// FormatError turns a store error into field messages suitable for a form.
func FormatError(err error) map[string]string {
	switch {
	case errors.Is(err, models.ErrUsernameTaken):
		return map[string]string{"username": "Un utilisateur avec ce nom existe déjà."}
	case errors.Is(err, models.ErrDuplicateReview):
		return map[string]string{"__all__": "Vous avez déjà posté une critique pour ce billet."}
	case errors.Is(err, models.ErrInvalidCredentials):
		return map[string]string{"__all__": "Nom d'utilisateur ou mot de passe incorrect."}
	case models.IsUniqueViolation(err):
		return map[string]string{"__all__": "Cet enregistrement existe déjà."}
	default:
		return map[string]string{"__all__": "Une erreur est survenue, veuillez réessayer."}
	}
}
