// Package deliverable renders the fixed artifact set for outreach: an
// audit.html report, an email (subject + body), a
// 90-second video script, and a send-queue CSV — for every eligible
// READY_ASSETS prospect. No artifact is ever sent automatically; this
// package renders content and, through Generator.Persist (writer.go),
// writes it to disk for manual hand-off.
package deliverable

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/eurekai25/prospecting-engine/pkg/models"
)

// DefaultSignature and DefaultBaseURL are the env-overridable defaults
// (SENDER_SIGNATURE, BASE_URL).
const (
	DefaultSignature = "L'équipe EURKAI"
	DefaultBaseURL   = "http://localhost:8000"
)

// Generator renders deliverables for a single deployment's branding and
// persists them under OutputDir (see writer.go).
type Generator struct {
	Signature string
	BaseURL   string
	OutputDir string
}

// New returns a Generator, substituting the defaults for any blank field.
// An empty outputDir falls back to DefaultSendQueueDir.
func New(signature, baseURL, outputDir string) *Generator {
	if signature == "" {
		signature = DefaultSignature
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Generator{Signature: signature, BaseURL: baseURL, OutputDir: outputDir}
}

// LandingURL renders the public landing route for a prospect's token.
func (g *Generator) LandingURL(p *models.Prospect) string {
	return fmt.Sprintf("%s/couvreur?t=%s", g.BaseURL, p.LandingToken)
}

func competitors(p *models.Prospect, maxN int) []string {
	out := make([]string, 0, maxN)
	for i, c := range p.CompetitorsCited {
		if i >= maxN {
			break
		}
		out = append(out, titleCase(c))
	}
	return out
}

// titleCase upper-cases the first letter of every space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// runsSummary aggregates a prospect's test run history across all runs
// regardless of model.
type runsSummary struct {
	TotalRuns     int
	Models        []string
	Dates         []string
	MentionedAny  bool
	MentionCount  int
	QueryLabels   [5]string
	QueryMentions [5]int
}

func summarize(runs []models.TestRun) runsSummary {
	var s runsSummary
	modelSet := map[string]bool{}
	dateSet := map[string]bool{}

	for _, r := range runs {
		s.TotalRuns++
		modelSet[string(r.Model)] = true
		dateSet[r.Timestamp.Format("02/01/2006")] = true
		if r.MentionedTarget {
			s.MentionedAny = true
			s.MentionCount++
		}
		for qi := 0; qi < 5 && qi < len(r.MentionPerQuery); qi++ {
			if r.MentionPerQuery[qi] {
				s.QueryMentions[qi]++
			}
			if s.QueryLabels[qi] == "" && qi < len(r.Queries) {
				s.QueryLabels[qi] = r.Queries[qi]
			}
		}
	}

	for m := range modelSet {
		s.Models = append(s.Models, m)
	}
	sort.Strings(s.Models)
	for d := range dateSet {
		s.Dates = append(s.Dates, d)
	}
	sort.Strings(s.Dates)

	return s
}

var auditTemplate = template.Must(template.New("audit").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<title>Audit IA — {{.CompanyName}}</title>
<style>
  body{font-family:Arial,sans-serif;margin:0;padding:40px;color:#222;max-width:900px;margin:auto}
  h1{color:#1a1a2e;border-bottom:3px solid #e94560;padding-bottom:10px}
  h2{color:#16213e;margin-top:40px}
  .score-box{background:#f0f4ff;border-left:5px solid #e94560;padding:20px 30px;margin:20px 0;border-radius:4px}
  .score-number{font-size:56px;font-weight:bold;color:#e94560}
  table{border-collapse:collapse;width:100%;margin:16px 0}
  th{background:#16213e;color:#fff;padding:10px 14px;text-align:left}
  td{padding:9px 14px;border-bottom:1px solid #e8e8e8}
  tr:nth-child(even){background:#f9f9fb}
  .badge-ok{background:#2ecc71;color:#fff;padding:3px 10px;border-radius:12px;font-size:12px}
  .badge-no{background:#e74c3c;color:#fff;padding:3px 10px;border-radius:12px;font-size:12px}
  .plan-action{background:#fffbea;border:1px solid #f1c40f;padding:20px 30px;border-radius:6px;margin-top:30px}
  .plan-action h2{color:#b8860b;margin-top:0}
  .checklist li{margin:8px 0}
  footer{margin-top:60px;color:#888;font-size:12px;border-top:1px solid #ddd;padding-top:20px}
</style>
</head>
<body>
<h1>Audit IA — Visibilité dans les réponses des intelligences artificielles</h1>
<p><strong>Entreprise :</strong> {{.CompanyName}}<br>
<strong>Ville :</strong> {{.City}}<br>
<strong>Secteur :</strong> {{.Profession}}<br>
<strong>Date du rapport :</strong> {{.ReportDate}}</p>

<div class="score-box">
  <div>Score de visibilité IA</div>
  <div class="score-number">{{.Score}}/10</div>
  <div>{{.JustificationShort}}</div>
</div>

<h2>Résultats des tests</h2>
<p>Tests réalisés : <strong>{{.TotalRuns}} runs</strong> sur {{.ModelsStr}} | Dates : {{.DatesStr}}</p>

<table>
  <tr><th>Requête</th><th>Cité</th></tr>
  {{range .QueryRows}}<tr><td>{{.Label}}</td><td>{{if .Cited}}<span class="badge-ok">Cité</span>{{else}}<span class="badge-no">Non cité</span>{{end}}</td></tr>
  {{end}}
</table>

<h2>Concurrents identifiés</h2>
<p>Les entreprises citées régulièrement par les IA :</p>
<ul>
  {{if .Competitors}}{{range .Competitors}}<li>{{.}}</li>
  {{end}}{{else}}<li>Aucun concurrent identifié</li>{{end}}
</ul>

<h2>Synthèse</h2>
<p>{{.Synthesis}}</p>

<div class="plan-action">
<h2>BONUS — Plan d'action prioritaire</h2>
<p>Pour améliorer votre visibilité IA dans les 90 prochains jours :</p>
<ul class="checklist">
  <li><strong>Google Business Profile</strong> — Compléter à 100% (description, catégories, photos, horaires)</li>
  <li><strong>Avis Google</strong> — Viser 40+ avis avec réponses systématiques (les IA lisent les avis)</li>
  <li><strong>Contenu FAQ</strong> — Publier 5-10 pages répondant aux questions exactes testées ci-dessus</li>
  <li><strong>Citations locales</strong> — Inscription sur les annuaires professionnels locaux</li>
  <li><strong>Structured Data</strong> — Ajouter JSON-LD LocalBusiness + AggregateRating sur votre site</li>
  <li><strong>Mentions presse</strong> — 1 article de blog local ou interview = signal fort pour les LLMs</li>
  <li><strong>Cohérence NAP</strong> — Nom / Adresse / Téléphone identiques partout</li>
  <li><strong>Site optimisé</strong> — Titre H1 incluant ville + profession (ex : « {{.Profession}} à {{.City}} »)</li>
</ul>
<p><em>Délai estimé pour apparaître dans les réponses IA : 2-4 mois selon l'action menée.</em></p>
</div>

<footer>
Rapport généré le {{.ReportDate}} — Tests réalisés sur {{.ModelsStr}}.<br>
Les réponses IA peuvent varier ; résultats basés sur tests répétés horodatés.
</footer>
</body>
</html>
`))

type auditQueryRow struct {
	Label string
	Cited bool
}

type auditView struct {
	CompanyName, City, Profession, ReportDate  string
	Score                                      float64
	JustificationShort, ModelsStr, DatesStr    string
	TotalRuns                                  int
	QueryRows                                  []auditQueryRow
	Competitors                                []string
	Synthesis                                  string
}

// GenerateAudit renders the audit.html report for a prospect given its
// full test run history.
func (g *Generator) GenerateAudit(p *models.Prospect, runs []models.TestRun) (string, error) {
	summary := summarize(runs)
	comps := competitors(p, 5)

	score := 0.0
	if p.IAVisibilityScore != nil {
		score = *p.IAVisibilityScore
	}
	justif := p.ScoreJustification
	if idx := strings.IndexByte(justif, '\n'); idx >= 0 {
		justif = justif[:idx]
	}

	rows := make([]auditQueryRow, 0, 5)
	for qi := 0; qi < 5; qi++ {
		label := summary.QueryLabels[qi]
		if label == "" {
			label = fmt.Sprintf("Requête %d", qi+1)
		}
		rows = append(rows, auditQueryRow{Label: label, Cited: summary.QueryMentions[qi] > 0})
	}

	visibility := "moyenne"
	if score < 3 {
		visibility = "très faible"
	} else if score < 6 {
		visibility = "faible"
	}

	mentionClause := "jamais mentionnée"
	if summary.MentionedAny {
		mentionClause = "mentionnée dans " + strconv.Itoa(summary.MentionCount) + " run(s)"
	}
	synthesis := fmt.Sprintf("%s présente une visibilité IA %s (score %g/10). Sur %d tests réalisés, l'entreprise est %s.",
		p.Name, visibility, score, summary.TotalRuns, mentionClause)
	if len(comps) > 0 {
		top := comps
		if len(top) > 2 {
			top = top[:2]
		}
		synthesis += fmt.Sprintf(" Les concurrents %s sont régulièrement cités à sa place.", strings.Join(top, ", "))
	}

	modelsStr := strings.Join(summary.Models, ", ")
	if modelsStr == "" {
		modelsStr = "—"
	}
	datesStr := "—"
	if len(summary.Dates) > 0 {
		capped := summary.Dates
		if len(capped) > 3 {
			capped = capped[:3]
		}
		datesStr = strings.Join(capped, ", ")
	}

	view := auditView{
		CompanyName:        p.Name,
		City:               p.City,
		Profession:         p.Profession,
		ReportDate:         time.Now().UTC().Format("02/01/2006"),
		Score:              score,
		JustificationShort: justif,
		ModelsStr:          modelsStr,
		DatesStr:           datesStr,
		TotalRuns:          summary.TotalRuns,
		QueryRows:          rows,
		Competitors:        comps,
		Synthesis:          synthesis,
	}

	var buf bytes.Buffer
	if err := auditTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("deliverable: rendering audit.html: %w", err)
	}
	return buf.String(), nil
}

// EmailArtifact is the email.json + email_body.txt pair, field names
// chosen for drop-in compatibility with existing send-queue tooling.
type EmailArtifact struct {
	ProspectID   string `json:"prospect_id"`
	ProspectName string `json:"prospect_name"`
	City         string `json:"city"`
	Profession   string `json:"profession"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
	LandingURL   string `json:"landing_url"`
	VideoURL     string `json:"video_url"`
	Competitor1  string `json:"competitor_1"`
	Competitor2  string `json:"competitor_2"`
}

// GenerateEmail renders the subject and body for a prospect's outreach
// email.
func (g *Generator) GenerateEmail(p *models.Prospect) EmailArtifact {
	comps := competitors(p, 2)
	comp1, comp2 := "vos concurrents", ""
	if len(comps) > 0 {
		comp1 = comps[0]
	}
	if len(comps) > 1 {
		comp2 = comps[1]
	}
	landingURL := g.LandingURL(p)
	video := p.VideoURL
	if video == "" {
		video = "[VIDÉO À AJOUTER]"
	}

	subject := fmt.Sprintf("À %s, ChatGPT recommande %s. Pas vous.", p.City, comp1)

	comp2Clause := ""
	if comp2 != "" {
		comp2Clause = fmt.Sprintf(" (et parfois %s)", comp2)
	}
	body := fmt.Sprintf(`Bonjour,

J'ai testé ce que répondent plusieurs IA lorsqu'un client cherche un %s à %s.

Sur des tests répétés, %s%s est régulièrement cité. Votre entreprise n'apparaît pas.

Vidéo (90s) : %s
Synthèse + options : %s

— %s

---
Vous recevez ce message car votre entreprise a été auditée dans le cadre d'une étude de marché locale.
`, p.Profession, p.City, comp1, comp2Clause, video, landingURL, g.Signature)

	return EmailArtifact{
		ProspectID: p.ID, ProspectName: p.Name, City: p.City, Profession: p.Profession,
		Subject: subject, Body: body, LandingURL: landingURL, VideoURL: video,
		Competitor1: comp1, Competitor2: comp2,
	}
}

// EmailBodyFile renders the plain-text file pairing SUBJECT with the body.
func (a EmailArtifact) EmailBodyFile() string {
	return fmt.Sprintf("SUBJECT: %s\n\n%s", a.Subject, a.Body)
}

// GenerateVideoScript renders the fixed six-line, ~90-second video script.
func (g *Generator) GenerateVideoScript(p *models.Prospect) string {
	comps := competitors(p, 2)
	comp1, comp2 := "[concurrent principal]", "[concurrent secondaire]"
	if len(comps) > 0 {
		comp1 = comps[0]
	}
	if len(comps) > 1 {
		comp2 = comps[1]
	}
	landingURL := g.LandingURL(p)

	return fmt.Sprintf(`SCRIPT VIDÉO — %s / %s
Durée cible : 90 secondes

1. « Bonjour %s, j'ai testé ce que répondent les IA quand un client cherche un %s à %s. »
2. « Voici la requête — je lance le test. »
3. (silence + scroll) « Comme vous voyez, %s et %s sont cités. »
4. (scroll) « Votre entreprise n'apparaît pas dans ces résultats. »
5. « On a répété ces tests sur plusieurs créneaux et sur plusieurs IA : le constat est stable. »
6. « Je vous ai préparé la synthèse + le plan d'action ici : %s »
`, p.Name, p.City, p.Name, p.Profession, p.City, comp1, comp2, landingURL)
}

// ProspectArtifacts bundles every rendered file for one prospect.
type ProspectArtifacts struct {
	AuditHTML      string
	Email          EmailArtifact
	VideoScript    string
}

// CampaignResult is the outcome of GenerateForCampaign.
type CampaignResult struct {
	Generated     int
	ProspectIDs   []string
	SendQueueCSV  string
	Artifacts     map[string]ProspectArtifacts
}

var sendQueueColumns = []string{
	"prospect_id", "name", "city", "profession", "email", "phone", "website",
	"score", "competitor_1", "competitor_2", "subject", "landing_url", "video_url", "status",
}

// GenerateForCampaign renders every artifact for each eligible prospect
// (status READY_ASSETS and eligibility_flag == true) and assembles the
// send-queue CSV. Any other prospect is skipped entirely — no artifact is
// rendered for it.
func (g *Generator) GenerateForCampaign(prospects []*models.Prospect, runsByProspect map[string][]models.TestRun) (CampaignResult, error) {
	result := CampaignResult{Artifacts: make(map[string]ProspectArtifacts)}

	var rows [][]string
	for _, p := range prospects {
		if !p.EligibilityFlag || p.Status != models.StatusReadyAssets {
			continue
		}
		email := g.GenerateEmail(p)
		audit, err := g.GenerateAudit(p, runsByProspect[p.ID])
		if err != nil {
			return CampaignResult{}, err
		}
		video := g.GenerateVideoScript(p)

		result.Artifacts[p.ID] = ProspectArtifacts{AuditHTML: audit, Email: email, VideoScript: video}
		result.ProspectIDs = append(result.ProspectIDs, p.ID)
		result.Generated++

		score := 0.0
		if p.IAVisibilityScore != nil {
			score = *p.IAVisibilityScore
		}
		rows = append(rows, []string{
			p.ID, p.Name, p.City, p.Profession, "", p.Phone, p.Website,
			strconv.FormatFloat(score, 'g', -1, 64),
			email.Competitor1, email.Competitor2, email.Subject, email.LandingURL, email.VideoURL,
			string(p.Status),
		})
	}

	if len(rows) > 0 {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(sendQueueColumns); err != nil {
			return CampaignResult{}, fmt.Errorf("deliverable: writing csv header: %w", err)
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return CampaignResult{}, fmt.Errorf("deliverable: writing csv row: %w", err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return CampaignResult{}, fmt.Errorf("deliverable: flushing csv: %w", err)
		}
		result.SendQueueCSV = buf.String()
	}

	return result, nil
}

// SendQueueFilename renders the send_queue_<UTCtimestamp>.csv name the
// send queue CSV is written under.
func SendQueueFilename(at time.Time) string {
	return fmt.Sprintf("send_queue_%s.csv", at.UTC().Format("20060102_1504"))
}
