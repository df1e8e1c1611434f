package posting

import "regexp"

var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "florida": "FL", "georgia": "GA",
	"hawaii": "HI", "idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC", "north dakota": "ND", "ohio": "OH",
	"oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT", "vermont": "VT",
	"virginia": "VA", "washington": "WA", "west virginia": "WV", "wisconsin": "WI", "wyoming": "WY",
	"district of columbia": "DC",
}

var stateCodes = func() map[string]struct{} {
	codes := make(map[string]struct{}, len(stateNames))
	for _, code := range stateNames {
		codes[code] = struct{}{}
	}
	return codes
}()

var stateNamePattern = func() *regexp.Regexp {
	names := make([]string, 0, len(stateNames))
	for name := range stateNames {
		names = append(names, name)
	}
	return regexp.MustCompile(`\b(` + alternation(names) + `)\b`)
}()

// skillVocabulary is scanned in every posting in addition to explicit skill lists.
var skillVocabulary = vocabulary(
	"golang", "python", "java", "javascript", "typescript", "ruby", "php", "rust", "scala", "kotlin",
	"swift", "c++", "c#", ".net", "sql", "nosql", "postgresql", "mysql", "mongodb", "redis",
	"kafka", "rabbitmq", "elasticsearch", "graphql", "grpc", "rest", "react", "angular", "vue",
	"node.js", "django", "flask", "spring", "aws", "azure", "gcp", "kubernetes", "docker",
	"terraform", "ansible", "linux", "git", "ci/cd", "jenkins", "spark", "airflow", "tableau",
	"excel", "salesforce", "figma", "machine learning", "pytorch", "tensorflow", "microservices",
	"agile", "scrum",
)

// industryVocabulary holds domain terms that earn a skills bonus when the resume mentions them.
var industryVocabulary = vocabulary(
	"fintech", "healthcare", "healthtech", "e-commerce", "ecommerce", "saas", "edtech", "gaming",
	"cybersecurity", "logistics", "biotech", "insurance", "banking", "payments", "media",
	"advertising", "adtech", "climate", "energy", "automotive", "retail", "real estate",
	"crypto", "blockchain", "telecommunications", "government", "nonprofit", "developer tools",
	"marketplace", "consumer", "enterprise software",
)
