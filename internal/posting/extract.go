package posting

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/job-fit/internal/logger"
	"github.com/spigell/job-fit/internal/profile"
	"github.com/spigell/job-fit/internal/utils"
)

const (
	hoursPerYear    = 2080
	maxTitleLength  = 120
	previewLength   = 160
	maxListItemSize = 4
)

var (
	employmentPatterns = []struct {
		kind    profile.EmploymentType
		pattern *regexp.Regexp
	}{
		{profile.FullTime, regexp.MustCompile(`(?i)\bfull[\s-]?time\b`)},
		{profile.PartTime, regexp.MustCompile(`(?i)\bpart[\s-]?time\b`)},
		{profile.Contract, regexp.MustCompile(`(?i)\b(contract|contractor|1099|c2c|corp[\s-]to[\s-]corp)\b`)},
		{profile.Temp, regexp.MustCompile(`(?i)\b(temporary|temp|seasonal)\b`)},
	}

	hybridPattern = regexp.MustCompile(`(?i)\bhybrid\b`)
	remotePattern = regexp.MustCompile(`(?i)\b(remote|wfh|work[\s-]from[\s-]home|fully distributed)\b`)
	onsitePattern = regexp.MustCompile(`(?i)\b(on[\s-]?site|in[\s-]office|in[\s-]person)\b`)

	cityStatePattern = regexp.MustCompile(`\b[A-Z][A-Za-z.'-]+(?:\s[A-Z][A-Za-z.'-]+)*,\s*([A-Z]{2})\b`)

	amount       = `(\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?)\s?(k)?`
	scaleSuffix  = `(\s?(?:mm|m|b|million|billion)\b)?`
	periodSuffix = `(\s*(?:/|per\s+|an\s+|a\s+)\s*(?:hr|hour|yr|year|annum))?`
	// Groups: low, low k, low scale, high, high k, high scale, period.
	salaryRange = regexp.MustCompile(`(?i)\$\s?` + amount + scaleSuffix + `\s*(?:-|–|—|to)\s*\$?\s?` + amount + scaleSuffix + periodSuffix)
	// Groups: value, k, scale, period.
	salarySingle  = regexp.MustCompile(`(?i)\$\s?` + amount + scaleSuffix + periodSuffix)
	hourlyPattern = regexp.MustCompile(`(?i)hr|hour`)
	// Perks quoted as a single amount, either "$5,000 signing bonus" or
	// "stipend of $1,000".
	perkAfter  = regexp.MustCompile(`(?i)^\s*(?:(?:signing|sign[\s-]on|relocation|annual|learning|education|wellness|home[\s-]office|equipment|referral|retention|performance)\s+)?(?:bonus|stipend|credits?|allowance)\b`)
	perkBefore = regexp.MustCompile(`(?i)\b(?:bonus|stipend|credits?|allowance)\s+(?:of\s+)?(?:up\s+to\s+)?$`)

	titlePrefix    = regexp.MustCompile(`(?i)^\s*(?:job\s+)?(?:title|position|role)\s*:\s*`)
	titleLine      = regexp.MustCompile(`(?im)^\s*(?:job\s+)?(?:title|position|role)\s*:\s*(.+)$`)
	yearsPattern   = regexp.MustCompile(`(?i)(\d{1,2})\+?\s*(?:-\s*\d{1,2}\s*)?years?(?:\s+of)?(?:\s+\w+)?\s+experience`)
	skillsListLine = regexp.MustCompile(`(?im)^\s*(?:required\s+skills|skills|requirements|tech(?:nology)?\s+stack|technologies|qualifications|must\s+have)\s*:\s*(.+)$`)
	listSeparator  = regexp.MustCompile(`\s*[,;|]\s*|\s+and\s+`)

	seniorityPatterns = []struct {
		level   Seniority
		pattern *regexp.Regexp
	}{
		{SeniorityExecutive, regexp.MustCompile(`(?i)\b(chief|cto|ceo|cfo|coo|cio|vp|vice president|svp|evp|head of)\b`)},
		{SeniorityDirector, regexp.MustCompile(`(?i)\bdirector\b`)},
		{SenioritySeniorManager, regexp.MustCompile(`(?i)\b(senior|sr)\.?\s+(?:\w+\s+)?manager\b`)},
		{SeniorityManager, regexp.MustCompile(`(?i)\bmanager\b`)},
		{SeniorityLead, regexp.MustCompile(`(?i)\b(lead|principal|staff)\b`)},
		{SenioritySenior, regexp.MustCompile(`(?i)\b(senior|sr)\b`)},
		{SeniorityMid, regexp.MustCompile(`(?i)\b(mid[\s-]?level|intermediate)\b`)},
		{SeniorityEntry, regexp.MustCompile(`(?i)\b(junior|jr|entry[\s-]level|graduate|intern|internship|new grad)\b`)},
	}

	travelPercent = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,3})\s?%\s*(?:of\s+the\s+time\s+)?travel`),
		regexp.MustCompile(`(?i)travel\s*(?::|of|requirements?:?)?\s*(?:up\s+to\s+|approximately\s+|about\s+|around\s+)?(\d{1,3})\s?%`),
	}
	noTravel = regexp.MustCompile(`(?i)\bno travel\b|travel(?:\s+is)?\s+not\s+required`)

	noOvertime  = regexp.MustCompile(`(?i)\bno (?:overtime|on[\s-]call)\b|\bovertime\s+(?:is\s+)?(?:never|not|rarely)\s+(?:required|expected|needed)\b|\bwithout\s+on[\s-]call\b`)
	overtime    = regexp.MustCompile(`(?i)\bovertime\b|\blong hours\b|\bon[\s-]call\b`)
	noShift     = regexp.MustCompile(`(?i)\bno shift work\b`)
	shift       = regexp.MustCompile(`(?i)\b(night|rotating|swing|overnight|12[\s-]hour)\s+shifts?\b|\bshift work\b`)
	noWeekend   = regexp.MustCompile(`(?i)\bno weekends?\b|\bweekends?\s+(?:are\s+)?off\b|\bweekend\s+work\s+(?:is\s+)?(?:never|not)\s+(?:required|expected)\b|\bnever\s+work\s+weekends\b|\bmonday\s*(?:-|–|to|through)\s*friday\b`)
	weekend     = regexp.MustCompile(`(?i)\bweekends?\b`)
	noRelocate  = regexp.MustCompile(`(?i)\bno relocation\b|relocation\s+(?:is\s+)?not\s+(?:available|provided|offered)|unable\s+to\s+(?:offer|provide)\s+relocation`)
	relocateYes = regexp.MustCompile(`(?i)relocation\s+(?:assistance|package|support|bonus|is\s+provided|is\s+available|provided|available|offered)`)
)

// Extractor extracts posting records and logs what it found.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an extractor. A nil logger disables logging.
func NewExtractor(l *zap.Logger) *Extractor {
	return &Extractor{logger: logger.OrNop(l)}
}

// Extract parses text and logs a debug summary keyed by source.
func (e *Extractor) Extract(source, text string) Record {
	r := Extract(text)

	logger.WithPostingFields(e.logger, source, r.Title).Debug("extracted posting",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, previewLength)),
		zap.String("employment_type", string(r.EmploymentType)),
		zap.String("work_arrangement", string(r.WorkArrangement)),
		zap.String("location_state", r.LocationState),
		zap.Bool("salary_known", r.Salary.Known),
		zap.String("seniority", string(r.Seniority)),
		zap.Strings("required_skills", r.RequiredSkills),
	)

	return r
}

// Extract parses a free-text job description into a Record. Fields it
// cannot determine keep their unknown sentinel.
func Extract(text string) Record {
	r := Empty()
	if strings.TrimSpace(text) == "" {
		return r
	}

	r.Title = extractTitle(text)
	r.EmploymentType = extractEmploymentType(text)
	r.WorkArrangement = extractWorkArrangement(text)
	r.LocationState = extractState(text)
	r.Salary = extractSalary(text)
	r.Seniority = extractSeniority(r.Title, text)
	r.RequiredSkills = extractSkills(text)
	r.Keywords = extractKeywords(text, r.RequiredSkills)
	r.Travel = extractTravel(text)
	r.Overtime = extractFlag(text, noOvertime, overtime)
	r.ShiftWork = extractFlag(text, noShift, shift)
	r.WeekendWork = extractFlag(text, noWeekend, weekend)
	r.Relocation = extractFlag(text, noRelocate, relocateYes)

	return r
}

func extractTitle(text string) string {
	if m := titleLine.FindStringSubmatch(text); len(m) > 1 {
		return utils.TruncateForLog(utils.CollapseSpaces(m[1]), maxTitleLength)
	}

	for _, line := range strings.Split(text, "\n") {
		line = utils.CollapseSpaces(titlePrefix.ReplaceAllString(line, ""))
		if line != "" {
			return utils.TruncateForLog(line, maxTitleLength)
		}
	}
	return ""
}

// extractEmploymentType returns the type whose keyword appears first.
func extractEmploymentType(text string) profile.EmploymentType {
	best := UnknownEmployment
	bestIdx := -1
	for _, p := range employmentPatterns {
		loc := p.pattern.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if bestIdx == -1 || loc[0] < bestIdx {
			best = p.kind
			bestIdx = loc[0]
		}
	}
	return best
}

// extractWorkArrangement prefers hybrid since hybrid postings usually also
// mention remote or office days.
func extractWorkArrangement(text string) profile.WorkArrangement {
	switch {
	case hybridPattern.MatchString(text):
		return profile.Hybrid
	case remotePattern.MatchString(text):
		return profile.Remote
	case onsitePattern.MatchString(text):
		return profile.Onsite
	default:
		return UnknownArrangement
	}
}

func extractState(text string) string {
	for _, m := range cityStatePattern.FindAllStringSubmatch(text, -1) {
		if _, ok := stateCodes[m[1]]; ok {
			return m[1]
		}
	}

	lower := strings.ToLower(text)
	if m := stateNamePattern.FindStringSubmatch(lower); len(m) > 1 {
		return stateNames[m[1]]
	}

	return Unknown
}

func extractSalary(text string) SalaryRange {
	for _, m := range salaryRange.FindAllStringSubmatch(text, -1) {
		// Funding rounds and revenue figures are not salaries.
		if m[3] != "" || m[6] != "" {
			continue
		}
		low, lowK := parseAmount(m[1], m[2])
		high, highK := parseAmount(m[4], m[5])
		// "$80-95k" carries the multiplier on the upper bound only.
		if highK && !lowK && low < 1000 {
			low *= 1000
		}
		if low > high {
			low, high = high, low
		}
		if isHourly(m[7], high) {
			low, high = low*hoursPerYear, high*hoursPerYear
		}
		if high > 0 {
			return SalaryRange{Low: low, High: high, Known: true}
		}
	}

	for _, idx := range salarySingle.FindAllStringSubmatchIndex(text, -1) {
		m := submatches(text, idx)
		if m[3] != "" || isPerk(text, idx[0], idx[1]) {
			continue
		}
		v, _ := parseAmount(m[1], m[2])
		if isHourly(m[4], v) {
			v *= hoursPerYear
		}
		if v > 0 {
			return SalaryRange{Low: v, High: v, Known: true}
		}
	}

	return SalaryRange{}
}

func submatches(text string, idx []int) []string {
	m := make([]string, len(idx)/2)
	for i := range m {
		if start := idx[2*i]; start >= 0 {
			m[i] = text[start:idx[2*i+1]]
		}
	}
	return m
}

func isPerk(text string, start, end int) bool {
	return perkAfter.MatchString(text[end:]) || perkBefore.MatchString(text[:start])
}

func parseAmount(num, k string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	if k != "" {
		return v * 1000, true
	}
	return v, false
}

// isHourly treats explicit hourly suffixes and small bare amounts as hourly rates.
func isHourly(suffix string, value float64) bool {
	if suffix != "" {
		return hourlyPattern.MatchString(suffix)
	}
	return value > 0 && value < 500
}

func extractSeniority(title, text string) Seniority {
	for _, p := range seniorityPatterns {
		if p.pattern.MatchString(title) {
			return p.level
		}
	}

	if m := yearsPattern.FindStringSubmatch(text); len(m) > 1 {
		years, err := strconv.Atoi(m[1])
		if err == nil {
			switch {
			case years >= 5:
				return SenioritySenior
			case years >= 3:
				return SeniorityMid
			default:
				return SeniorityEntry
			}
		}
	}

	// Fall back to IC-level words in the body only; management words in the
	// body usually describe who the role reports to.
	for _, p := range seniorityPatterns {
		switch p.level {
		case SenioritySenior, SeniorityMid, SeniorityEntry:
			if p.pattern.MatchString(text) {
				return p.level
			}
		}
	}

	return SeniorityUnknown
}

func extractSkills(text string) []string {
	var found []string

	for _, m := range skillsListLine.FindAllStringSubmatch(text, -1) {
		for _, item := range listSeparator.Split(m[1], -1) {
			item = strings.Trim(utils.CollapseSpaces(item), ".:()")
			if item == "" || len(strings.Fields(item)) > maxListItemSize {
				continue
			}
			found = append(found, item)
		}
	}

	for _, term := range skillVocabulary {
		if term.pattern.MatchString(text) {
			found = append(found, term.name)
		}
	}

	return utils.DedupeFold(found)
}

func extractKeywords(text string, skills []string) []string {
	taken := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		taken[strings.ToLower(s)] = struct{}{}
	}

	var found []string
	for _, term := range industryVocabulary {
		if _, ok := taken[term.name]; ok {
			continue
		}
		if term.pattern.MatchString(text) {
			found = append(found, term.name)
		}
	}
	return utils.DedupeFold(found)
}

func extractTravel(text string) Requirement {
	for _, p := range travelPercent {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			if v, err := strconv.Atoi(m[1]); err == nil {
				return Requirement{Stated: true, Percent: profile.Clamp(v)}
			}
		}
	}
	if noTravel.MatchString(text) {
		return Requirement{Stated: true, Percent: 0}
	}
	return Requirement{}
}

func extractFlag(text string, no, yes *regexp.Regexp) Flag {
	switch {
	case no.MatchString(text):
		return FlagNo
	case yes.MatchString(text):
		return FlagYes
	default:
		return FlagUnknown
	}
}

type vocabularyTerm struct {
	name    string
	pattern *regexp.Regexp
}

// termPattern matches term case-insensitively where it is not glued to
// other letters, digits or the '+', '#' and '.' of names like "C++".
func termPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9+#.])` + regexp.QuoteMeta(term) + `(?:$|[^a-z0-9+#])`)
}

func vocabulary(terms ...string) []vocabularyTerm {
	result := make([]vocabularyTerm, 0, len(terms))
	for _, t := range terms {
		result = append(result, vocabularyTerm{name: t, pattern: termPattern(t)})
	}
	return result
}

func alternation(values []string) string {
	sorted := append([]string(nil), values...)
	// Longest first so "west virginia" wins over "virginia".
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, 0, len(sorted))
	for _, v := range sorted {
		quoted = append(quoted, regexp.QuoteMeta(v))
	}
	return strings.Join(quoted, "|")
}
