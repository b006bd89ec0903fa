// Package report renders an integrated assessment as a markdown document
// for clinicians and, through the API layer, as HTML.
package report

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"sizhen/domain/core"
	"sizhen/domain/diagnosis"
)

// Markdown renders one assessment as a markdown report. Guidance lines are
// optional.
func Markdown(patientID core.PatientID, a *diagnosis.IntegratedAssessment, suggestions []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Integrated Diagnostic Report\n\n")
	fmt.Fprintf(&b, "- Assessment: `%s`\n", a.ID)
	fmt.Fprintf(&b, "- Patient: `%s`\n", patientID)
	fmt.Fprintf(&b, "- Generated: %s\n", a.Timestamp.Time().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Rule tables: %s\n\n", a.TableVersion)

	fmt.Fprintf(&b, "## Summary\n\n%s\n\n", a.Summary)

	fmt.Fprintf(&b, "## Constitution\n\n")
	fmt.Fprintf(&b, "Type: **%s**. Diagnostic confidence: **%.0f%%** "+
		"(based on %d of %d examinations: %s).\n\n",
		a.ConstitutionType, a.DiagnosticConfidence,
		len(a.ModalitiesUsed), len(diagnosis.Modalities()), joinModalities(a.ModalitiesUsed))

	writeElements(&b, &a.Elements, a.EnergyLevel)
	writeYinYang(&b, &a.YinYang)
	writeOrgans(&b, &a.Organs)
	writeConflicts(&b, a.Conflicts)
	writeSuggestions(&b, suggestions)

	return b.String()
}

func writeElements(b *strings.Builder, p *diagnosis.ElementProfile, energy float64) {
	fmt.Fprintf(b, "## Five Elements\n\n")
	fmt.Fprintf(b, "| Element | Value |\n|---|---|\n")
	values := make([]float64, 0, len(diagnosis.ElementOrder()))
	for _, e := range diagnosis.ElementOrder() {
		v := p.Value(e)
		values = append(values, v)
		fmt.Fprintf(b, "| %s | %.1f |\n", e, v)
	}
	mean, std := stat.MeanStdDev(values, nil)
	fmt.Fprintf(b, "\nDominant: **%s**, deficient: **%s**. Energy level %.1f "+
		"(element mean %.1f, dispersion %.1f).\n",
		p.DominantElement, p.DeficientElement, energy, mean, std)
	if len(p.Imbalances) > 0 {
		fmt.Fprintf(b, "\nImbalances: %s.\n", strings.Join(p.Imbalances, ", "))
	}
	fmt.Fprintf(b, "\n")
}

func writeYinYang(b *strings.Builder, p *diagnosis.YinYangProfile) {
	fmt.Fprintf(b, "## Yin-Yang Balance\n\n")
	fmt.Fprintf(b, "Yin %.1f, yang %.1f: **%s**.\n\n", p.Yin, p.Yang, p.Balance)
}

func writeOrgans(b *strings.Builder, p *diagnosis.OrganProfile) {
	fmt.Fprintf(b, "## Organ Systems\n\n")
	fmt.Fprintf(b, "| Organ | Value |\n|---|---|\n")
	for _, o := range diagnosis.OrganOrder() {
		fmt.Fprintf(b, "| %s | %.1f |\n", o, p.Value(o))
	}
	if len(p.Anomalies) > 0 {
		fmt.Fprintf(b, "\nAnomalies: %s.\n", strings.Join(p.Anomalies, ", "))
	}
	fmt.Fprintf(b, "\n")
}

func writeConflicts(b *strings.Builder, conflicts []diagnosis.ConflictRecord) {
	if len(conflicts) == 0 {
		return
	}
	fmt.Fprintf(b, "## Conflicts\n\n")
	for _, c := range conflicts {
		fmt.Fprintf(b, "- **%s** (%s severity, %s): %s. Resolution: %s.\n",
			c.Type, c.Severity, joinModalities(c.Modalities), c.Description, c.Resolution)
	}
	fmt.Fprintf(b, "\n")
}

func writeSuggestions(b *strings.Builder, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(b, "## Guidance\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(b, "- %s\n", s)
	}
}

func joinModalities(ms []diagnosis.Modality) string {
	names := make([]string, len(ms))
	for i, m := range ms {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
