package model

// AuthorityTier represents the classification of a citation's source
type AuthorityTier int

const (
	TierUnknown   AuthorityTier = 0 // Not yet classified
	TierPrimary   AuthorityTier = 1 // Statistics offices, statutes, academic papers, official documents
	TierSecondary AuthorityTier = 2 // Encyclopedias, wire services, fact-checkers, major media
	TierTertiary  AuthorityTier = 3 // Blogs, personal websites, everything else
)

func (t AuthorityTier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierTertiary:
		return "tertiary"
	default:
		return "unknown"
	}
}

// SourcesConfig tunes citation authority classification
type SourcesConfig struct {
	PrimaryDomains   []string          `yaml:"primary_domains" mapstructure:"primary_domains"`
	SecondaryDomains []string          `yaml:"secondary_domains" mapstructure:"secondary_domains"`
	DomainMap        map[string]string `yaml:"domain_map,omitempty" mapstructure:"domain_map"` // host -> primary|secondary|tertiary
}

// DefaultSourcesConfig returns the built-in domain lists
func DefaultSourcesConfig() SourcesConfig {
	return SourcesConfig{
		PrimaryDomains: []string{
			"doi.org",
			"arxiv.org",
			"nih.gov",
			"who.int",
			"un.org",
			"oecd.org",
			"worldbank.org",
			"imf.org",
			"europa.eu",
			"legislation.gov.uk",
			"ons.gov.uk",
		},
		SecondaryDomains: []string{
			"wikipedia.org",
			"britannica.com",
			"reuters.com",
			"apnews.com",
			"bbc.co.uk",
			"bbc.com",
			"factcheck.org",
			"politifact.com",
			"fullfact.org",
			"snopes.com",
		},
	}
}
