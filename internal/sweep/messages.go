package sweep

import (
	"fmt"

	"cfc-deblocages/internal/domain/alert"
)

// Locale selects the language of rendered alert messages. It is passed in
// explicitly; there is no process-wide language state.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocaleEN Locale = "en"
)

func ParseLocale(s string) Locale {
	if s == string(LocaleEN) {
		return LocaleEN
	}
	return LocaleFR
}

// RenderMessage turns a structured candidate into operator-facing text.
func RenderMessage(loc Locale, c Candidate) string {
	if loc == LocaleEN {
		switch c.Type {
		case alert.TypeValidityCritical:
			return fmt.Sprintf("URGENT: the loan offer expires in %d days!", c.DaysRemaining)
		case alert.TypeValidityWarning:
			return fmt.Sprintf("Warning: %d days left before the offer expires", c.DaysRemaining)
		case alert.TypeWorkDelayWarning:
			return fmt.Sprintf("Work is behind schedule: %d%% completed", c.CompletionPct)
		case alert.TypeRepaymentUpcoming:
			return fmt.Sprintf("Repayment starts in %d days", c.DaysUntilPayment)
		case alert.TypeRepaymentImminent:
			return fmt.Sprintf("URGENT: repayment starts in %d days!", c.DaysUntilPayment)
		}
		return string(c.Type)
	}

	switch c.Type {
	case alert.TypeValidityCritical:
		return fmt.Sprintf("URGENT: L'offre de prêt expire dans %d jours!", c.DaysRemaining)
	case alert.TypeValidityWarning:
		return fmt.Sprintf("Attention: Il reste %d jours avant l'expiration de l'offre", c.DaysRemaining)
	case alert.TypeWorkDelayWarning:
		return fmt.Sprintf("Retard constaté sur les travaux: %d%% réalisé", c.CompletionPct)
	case alert.TypeRepaymentUpcoming:
		return fmt.Sprintf("Le remboursement commence dans %d jours", c.DaysUntilPayment)
	case alert.TypeRepaymentImminent:
		return fmt.Sprintf("URGENT: Le remboursement commence dans %d jours!", c.DaysUntilPayment)
	}
	return string(c.Type)
}
