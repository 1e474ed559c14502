package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Citation is a scored pointer into the regulatory corpus attached to a
// generated answer.
type Citation struct {
	Source string
	URL    string
	Score  float64 // [0,1]
}

// Reply is one generated assistant turn.
type Reply struct {
	Content   string
	Citations []Citation
	Tokens    int
	Latency   time.Duration
}

// Responder produces the assistant side of a chat exchange.
type Responder interface {
	Respond(ctx context.Context, question string, language string) (*Reply, error)
}

// CannedResponder answers every question from a fixed regulatory playbook.
// The chat surface needs plausible answers with scored citations; actual
// retrieval is out of scope, so this mirrors what the product mocks today.
type CannedResponder struct {
	latency time.Duration
}

func NewCannedResponder(latency time.Duration) *CannedResponder {
	return &CannedResponder{latency: latency}
}

var playbook = []struct {
	keywords  []string
	es, en    string
	citations []Citation
}{
	{
		keywords: []string{"mifid", "idoneidad", "suitability", "asesoramiento", "advice"},
		es:       "Según MiFID II, la entidad debe evaluar la idoneidad del cliente antes de prestar asesoramiento: conocimientos y experiencia, situación financiera y objetivos de inversión (Art. 25.2). Las recomendaciones deben documentarse y entregarse al cliente en soporte duradero.",
		en:       "Under MiFID II, the firm must assess client suitability before providing advice: knowledge and experience, financial situation and investment objectives (Art. 25.2). Recommendations must be documented and delivered to the client in a durable medium.",
		citations: []Citation{
			{Source: "MiFID II - Artículo 25", URL: "https://eur-lex.europa.eu/eli/dir/2014/65/oj", Score: 0.95},
			{Source: "ESMA Guidelines on suitability", URL: "https://esma.europa.eu/document/guidelines-suitability", Score: 0.88},
		},
	},
	{
		keywords: []string{"dora", "ict", "resiliencia", "resilience", "operational"},
		es:       "DORA exige a las entidades financieras un marco de gestión del riesgo TIC: inventario de activos críticos, pruebas de resiliencia operativa digital y notificación de incidentes graves a la autoridad competente en los plazos establecidos.",
		en:       "DORA requires financial entities to maintain an ICT risk management framework: critical asset inventory, digital operational resilience testing and reporting of major incidents to the competent authority within the set deadlines.",
		citations: []Citation{
			{Source: "DORA - Reglamento (UE) 2022/2554", URL: "https://eur-lex.europa.eu/eli/reg/2022/2554/oj", Score: 0.93},
			{Source: "EBA Guidelines ICT Risk", URL: "https://eba.europa.eu/regulation-and-policy/internal-governance/guidelines-on-ict-and-security-risk-management", Score: 0.87},
		},
	},
	{
		keywords: []string{"solvencia", "solvency", "capital", "pilar", "pillar"},
		es:       "El marco de Solvencia II se articula en tres pilares: requisitos cuantitativos de capital (SCR/MCR), gobernanza y gestión de riesgos, y disciplina de mercado mediante divulgación pública (Pilar 3).",
		en:       "The Solvency II framework rests on three pillars: quantitative capital requirements (SCR/MCR), governance and risk management, and market discipline through public disclosure (Pillar 3).",
		citations: []Citation{
			{Source: "Solvencia II - Directiva 2009/138/CE", URL: "https://eur-lex.europa.eu/eli/dir/2009/138/oj", Score: 0.91},
			{Source: "EIOPA Guidelines on reporting", URL: "https://eiopa.europa.eu/browse/regulation-and-policy", Score: 0.84},
		},
	},
	{
		keywords: []string{"esg", "clima", "climate", "sostenib", "sustain", "csrd"},
		es:       "Los requisitos de divulgación climática derivan de la CSRD y de las expectativas supervisoras del BCE: las entidades significativas deben integrar los riesgos climáticos y medioambientales en su apetito de riesgo, gobernanza y divulgación.",
		en:       "Climate disclosure requirements stem from the CSRD and the ECB's supervisory expectations: significant institutions must integrate climate-related and environmental risks into their risk appetite, governance and disclosures.",
		citations: []Citation{
			{Source: "ECB Guide on climate-related risks", URL: "https://bankingsupervision.europa.eu/ecb/pub/pdf/ssm.202011finalguideonclimate-relatedandenvironmentalrisks~58213f6564.en.pdf", Score: 0.9},
			{Source: "CSRD - Directiva (UE) 2022/2464", URL: "https://eur-lex.europa.eu/eli/dir/2022/2464/oj", Score: 0.82},
		},
	},
}

var fallback = struct {
	es, en    string
	citations []Citation
}{
	es: "He consultado la base de conocimiento regulatoria. La normativa aplicable depende del tipo de entidad y de la actividad concreta; como punto de partida, revise los requisitos de conducta de MiFID II y las guías de la EBA sobre gobernanza interna.",
	en: "I checked the regulatory knowledge base. The applicable framework depends on the entity type and the specific activity; as a starting point, review the MiFID II conduct requirements and the EBA guidelines on internal governance.",
	citations: []Citation{
		{Source: "MiFID II - Artículo 25", URL: "https://eur-lex.europa.eu/eli/dir/2014/65/oj", Score: 0.72},
		{Source: "EBA Guidelines on internal governance", URL: "https://eba.europa.eu/regulation-and-policy/internal-governance", Score: 0.64},
	},
}

// Respond picks the best playbook entry for the question. Latency is
// simulated so the client's pending indicator is observable in dev.
func (r *CannedResponder) Respond(ctx context.Context, question string, language string) (*Reply, error) {
	if r.latency > 0 {
		select {
		case <-time.After(r.latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	content, citations := match(question, language)

	out := make([]Citation, len(citations))
	copy(out, citations)

	return &Reply{
		Content:   content,
		Citations: out,
		Tokens:    estimateTokens(question) + estimateTokens(content),
		Latency:   r.latency,
	}, nil
}

func match(question, language string) (string, []Citation) {
	q := strings.ToLower(question)
	for _, entry := range playbook {
		for _, kw := range entry.keywords {
			if strings.Contains(q, kw) {
				if language == "en" {
					return entry.en, entry.citations
				}
				return entry.es, entry.citations
			}
		}
	}
	if language == "en" {
		return fallback.en, fallback.citations
	}
	return fallback.es, fallback.citations
}

// estimateTokens approximates the usual 4-chars-per-token heuristic.
func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return n/4 + 1
}

var _ Responder = (*CannedResponder)(nil)

// String implements fmt.Stringer for debug logs.
func (r *Reply) String() string {
	return fmt.Sprintf("reply(%d tokens, %d citations)", r.Tokens, len(r.Citations))
}
