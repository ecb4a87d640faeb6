package classifier

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	mcpstrings "moncomptepro/pkg/platform/strings"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables is the configuration data behind every classification predicate.
type Tables struct {
	FreeEmailProviders []string `yaml:"free_email_providers"`
	SoleProprietorship struct {
		LegalCategories  []string `yaml:"legal_categories"`
		EmployeeBrackets []string `yaml:"employee_brackets"`
	} `yaml:"sole_proprietorship"`
	Municipality struct {
		LegalCategories []string `yaml:"legal_categories"`
	} `yaml:"municipality"`
	School struct {
		ActivityCodes []string `yaml:"activity_codes"`
	} `yaml:"primary_or_secondary_school"`
	FewerThanFiftyEmployees struct {
		EmployeeBrackets []string `yaml:"employee_brackets"`
	} `yaml:"fewer_than_fifty_employees"`
	EducationDomainPattern string `yaml:"education_domain_pattern"`
}

// DefaultTables returns the tables embedded in the binary.
func DefaultTables() (Tables, error) {
	return parseTables(defaultTablesYAML)
}

// LoadTables reads tables from path, or returns the embedded defaults when
// path is empty.
func LoadTables(path string) (Tables, error) {
	if path == "" {
		return DefaultTables()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read classification tables: %w", err)
	}
	return parseTables(data)
}

func parseTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("parse classification tables: %w", err)
	}
	if len(t.FreeEmailProviders) == 0 {
		return Tables{}, fmt.Errorf("classification tables: free_email_providers is empty")
	}
	return t, nil
}

// codeSet matches codes exactly or, for entries ending with "*", by prefix.
type codeSet struct {
	exact    map[string]struct{}
	prefixes []string
}

func newCodeSet(entries []string) codeSet {
	cs := codeSet{exact: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		e = strings.ToUpper(strings.TrimSpace(e))
		if p, ok := strings.CutSuffix(e, "*"); ok && p != "" {
			cs.prefixes = append(cs.prefixes, p)
			continue
		}
		cs.exact[e] = struct{}{}
	}
	return cs
}

func (cs codeSet) matches(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := cs.exact[code]; ok {
		return true
	}
	if code == "" {
		return false
	}
	for _, p := range cs.prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

type compiled struct {
	freeProviders        map[string]struct{}
	soleLegalCategories  codeSet
	soleEmployeeBrackets codeSet
	municipalityLegal    codeSet
	schoolActivities     codeSet
	underFiftyBrackets   codeSet
	educationDomain      *regexp.Regexp
}

func compile(t Tables) (compiled, error) {
	c := compiled{
		freeProviders:        mcpstrings.Set(t.FreeEmailProviders),
		soleLegalCategories:  newCodeSet(t.SoleProprietorship.LegalCategories),
		soleEmployeeBrackets: newCodeSet(t.SoleProprietorship.EmployeeBrackets),
		municipalityLegal:    newCodeSet(t.Municipality.LegalCategories),
		schoolActivities:     newCodeSet(t.School.ActivityCodes),
		underFiftyBrackets:   newCodeSet(t.FewerThanFiftyEmployees.EmployeeBrackets),
	}
	if t.EducationDomainPattern != "" {
		re, err := regexp.Compile(t.EducationDomainPattern)
		if err != nil {
			return compiled{}, fmt.Errorf("education_domain_pattern: %w", err)
		}
		c.educationDomain = re
	}
	return c, nil
}
