package sources

import (
	"net/url"
	"strings"

	"github.com/ppiankov/clipverity/internal/model"
)

// AuthorityClassifier classifies citation URLs into authority tiers
type AuthorityClassifier struct {
	domainMap    map[string]model.AuthorityTier
	primaryMap   map[string]bool
	secondaryMap map[string]bool
}

// NewAuthorityClassifier creates a new authority classifier
func NewAuthorityClassifier(config *model.SourcesConfig) *AuthorityClassifier {
	if config == nil {
		def := model.DefaultSourcesConfig()
		config = &def
	}

	classifier := &AuthorityClassifier{
		domainMap:    make(map[string]model.AuthorityTier, len(config.DomainMap)),
		primaryMap:   make(map[string]bool, len(config.PrimaryDomains)),
		secondaryMap: make(map[string]bool, len(config.SecondaryDomains)),
	}

	for host, tier := range config.DomainMap {
		classifier.domainMap[strings.ToLower(host)] = parseTierString(tier)
	}
	for _, domain := range config.PrimaryDomains {
		classifier.primaryMap[strings.ToLower(domain)] = true
	}
	for _, domain := range config.SecondaryDomains {
		classifier.secondaryMap[strings.ToLower(domain)] = true
	}

	return classifier
}

// Classify classifies a URL into an authority tier
func (a *AuthorityClassifier) Classify(rawURL string) model.AuthorityTier {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return model.TierTertiary
	}

	host := strings.ToLower(parsed.Hostname())

	// Explicit mappings win
	if tier, ok := a.domainMap[host]; ok {
		return tier
	}

	if matchesDomain(host, a.primaryMap) {
		return model.TierPrimary
	}
	if matchesDomain(host, a.secondaryMap) {
		return model.TierSecondary
	}

	// Government and academic TLDs
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".edu") || strings.HasSuffix(host, ".mil") {
		return model.TierPrimary
	}
	if strings.HasSuffix(host, ".gov.uk") || strings.HasSuffix(host, ".ac.uk") {
		return model.TierPrimary
	}

	return model.TierTertiary
}

// Annotate sets the authority tier on every citation of a record
func (a *AuthorityClassifier) Annotate(record *model.FactCheckRecord) {
	if record == nil {
		return
	}
	for i := range record.Sources {
		record.Sources[i].Authority = a.Classify(record.Sources[i].URL)
	}
}

// matchesDomain reports whether host is, or is a subdomain of, any domain in set
func matchesDomain(host string, set map[string]bool) bool {
	if set[host] {
		return true
	}
	for domain := range set {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// parseTierString converts a tier string to AuthorityTier
func parseTierString(tier string) model.AuthorityTier {
	switch strings.ToLower(tier) {
	case "primary", "1":
		return model.TierPrimary
	case "secondary", "2":
		return model.TierSecondary
	default:
		return model.TierTertiary
	}
}
