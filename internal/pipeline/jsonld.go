package pipeline

import (
	"time"

	"github.com/ppiankov/trustgraph/internal/model"
)

// jsonldContext is shared by every linked-data document
var jsonldContext = map[string]string{
	"@vocab": "https://schema.org/",
	"ex":     "https://jsonld-ex.org/vocab#",
	"prov":   "http://www.w3.org/ns/prov#",
}

// agentName identifies the producer in prov:wasAssociatedWith
const agentName = "TrustGraph Agent"

// ClaimDocument renders a claim as an ex:VerifiedClaim JSON-LD node
func ClaimDocument(claim model.Claim) map[string]interface{} {
	doc := claimNode(claim)
	doc["@context"] = jsonldContext
	return doc
}

// ReportDocument renders a report as a JSON-LD graph of verified claims
func ReportDocument(report *model.Report) map[string]interface{} {
	graph := make([]map[string]interface{}, 0, len(report.Claims))
	var conflicts []map[string]interface{}

	for _, c := range report.Claims {
		graph = append(graph, claimNode(c))
		if c.Conflict != nil {
			conflicts = append(conflicts, map[string]interface{}{
				"ex:claim":          c.ID,
				"ex:claimText":      c.ClaimText,
				"ex:conflictDegree": c.Conflict.ConflictDegree,
			})
		}
	}

	doc := map[string]interface{}{
		"@context":             jsonldContext,
		"@type":                "ex:VerificationReport",
		"ex:query":             report.Query,
		"ex:claims":            graph,
		"ex:conflicts":         conflicts,
		"ex:stats":             report.Stats,
		"prov:generatedAtTime": report.GeneratedAt.Format(time.RFC3339Nano),
	}
	if conflicts == nil {
		doc["ex:conflicts"] = []map[string]interface{}{}
	}
	return doc
}

func claimNode(claim model.Claim) map[string]interface{} {
	sources := make([]map[string]interface{}, 0, len(claim.Sources))
	for _, s := range claim.Sources {
		sources = append(sources, map[string]interface{}{
			"@type":         "CreativeWork",
			"name":          s.Title,
			"url":           s.URL,
			"ex:trustScore": s.TrustScore,
			"ex:supports":   s.Supports,
		})
	}

	node := map[string]interface{}{
		"@id":          claim.ID,
		"@type":        "ex:VerifiedClaim",
		"ex:claimText": claim.ClaimText,
		"ex:verdict":   string(claim.Verdict),
		"ex:confidence": map[string]interface{}{
			"@type":                   "ex:SubjectiveOpinion",
			"ex:belief":               claim.Confidence.Belief,
			"ex:disbelief":            claim.Confidence.Disbelief,
			"ex:uncertainty":          claim.Confidence.Uncertainty,
			"ex:baseRate":             claim.Confidence.BaseRate,
			"ex:projectedProbability": claim.Confidence.ProjectedProbability,
		},
		"prov:wasGeneratedBy": map[string]interface{}{
			"@type":                  "prov:Activity",
			"prov:wasAssociatedWith": agentName,
			"prov:endedAtTime":       claim.GeneratedAt.Format(time.RFC3339Nano),
		},
		"ex:sources": sources,
	}

	if c := claim.Conflict; c != nil {
		node["ex:conflict"] = map[string]interface{}{
			"ex:conflictDegree":       c.ConflictDegree,
			"ex:supportingOpinion":    c.SupportingOpinion,
			"ex:contradictingOpinion": c.ContradictingOpinion,
			"ex:numSupporting":        c.NumSupporting,
			"ex:numContradicting":     c.NumContradicting,
		}
	}

	return node
}
