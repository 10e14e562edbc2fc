package prompt

import (
	"fmt"
	"strings"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
)

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// Summary renders the analyst prompt for the prestige synthesis note of a
// dossier. Document content is inlined; missing fields carry explicit
// French fallbacks so the model never sees empty slots.
func Summary(p *model.Project) string {
	documentsList := "Aucun document importé."
	if len(p.Documents) > 0 {
		lines := make([]string, 0, len(p.Documents))
		for _, d := range p.Documents {
			lines = append(lines, fmt.Sprintf("- %s: %s", d.Name, d.Content))
		}
		documentsList = strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString("Agis en tant qu'assistant de conciergerie de luxe et expert en stratégie d'entreprise pour Yes Conciergerie.\n")
	fmt.Fprintf(&b, "Analyse le dossier confidentiel de %s %s (Localisation: %s).\n\n", p.FirstName, p.LastName, p.Location)
	b.WriteString("INFORMATIONS CLIENT:\n")
	fmt.Fprintf(&b, "- Métier: %s\n", orDefault(p.Info.Profession, "N/A"))
	fmt.Fprintf(&b, "- Email: %s\n", orDefault(p.Info.Email, "N/A"))
	fmt.Fprintf(&b, "- Tel: %s\n", orDefault(p.Info.Phone, "N/A"))
	fmt.Fprintf(&b, "- Biographie: %s\n", orDefault(p.Info.Biography, "Non renseigné"))
	fmt.Fprintf(&b, "- Points forts: %s\n", orDefault(p.Info.Strengths, "Non renseigné"))
	fmt.Fprintf(&b, "- Transcript Appel: %s\n\n", orDefault(p.Info.CallTranscript, "Aucun transcript fourni"))
	b.WriteString("OBJECTIFS ET FINANCE:\n")
	fmt.Fprintf(&b, "- Objectifs: %s\n", orDefault(p.Info.Goals, "Non renseigné"))
	fmt.Fprintf(&b, "- Commission Conciergerie: %s%%\n", orDefault(p.Info.ConciergeCommission, "N/A"))
	fmt.Fprintf(&b, "- CA Cible Y1: %s\n", orDefault(p.Info.TargetRevenueY1, "N/A"))
	fmt.Fprintf(&b, "- CA Cible Y2: %s\n", orDefault(p.Info.TargetRevenueY2, "N/A"))
	fmt.Fprintf(&b, "- CA Cible Y3: %s\n", orDefault(p.Info.TargetRevenueY3, "N/A"))
	fmt.Fprintf(&b, "- Marge brute cible: %s\n\n", orDefault(p.Info.TargetGrossMargin, "N/A"))
	b.WriteString("DOCUMENTS ANALYSÉS:\n")
	b.WriteString(documentsList)
	b.WriteString("\n\nTRAVAIL DEMANDÉ:\n")
	b.WriteString("Génère une note de synthèse de prestige incluant:\n")
	b.WriteString("1. Analyse du profil client (incluant son métier) et alignement stratégique avec Yes Conciergerie.\n")
	fmt.Fprintf(&b, "2. Viabilité de la trajectoire financière, en tenant compte de la commission de conciergerie (%s%%).\n", orDefault(p.Info.ConciergeCommission, "0"))
	b.WriteString("3. Synthèse des points clés extraits des documents et du transcript d'appel.\n")
	b.WriteString("4. Recommandations haute-performance pour atteindre les objectifs.\n\n")
	b.WriteString("Réponds en français, avec un ton extrêmement professionnel, élégant et confidentiel, fidèle à l'image de marque Yes Conciergerie.\n")
	return b.String()
}

// ChatSystem is the system instruction pinning the conversational
// assistant to one dossier.
func ChatSystem(p *model.Project) string {
	return fmt.Sprintf(
		"Tu es l'assistant de prestige de Yes Conciergerie, dédié au dossier de %s %s. Ton ton est poli, raffiné et efficace.",
		p.FirstName, p.LastName,
	)
}
