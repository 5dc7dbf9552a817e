package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

// Known job boards
const (
	PlatformGreenhouse  Platform = "greenhouse"
	PlatformLever       Platform = "lever"
	PlatformWorkday     Platform = "workday"
	PlatformNaukri      Platform = "naukri"
	PlatformInternshala Platform = "internshala"
	PlatformUnknown     Platform = "unknown"
)

type platformRule struct {
	platform Platform
	hosts    []string // host suffixes
	content  []string
	noise    []string
}

var platformRules = []platformRule{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformNaukri,
		hosts:    []string{"naukri.com"},
		content:  []string{".job-desc", "section.job-desc", ".jd-container"},
		noise:    []string{".similar-jobs", ".apply-button-wrapper", ".chatbot"},
	},
	{
		platform: PlatformInternshala,
		hosts:    []string{"internshala.com"},
		content:  []string{".internship_details", ".detail_view", ".individual_internship_details"},
		noise:    []string{".similar_internships_container", ".apply_now_button", "#apply_now_modal"},
	},
}

// commonNoise is removed from every page
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	"[data-testid='application-form']",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, rule := range platformRules {
		for _, suffix := range rule.hosts {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return rule.platform
			}
		}
	}
	return PlatformUnknown
}

func (p Platform) rule() (platformRule, bool) {
	for _, rule := range platformRules {
		if rule.platform == p {
			return rule, true
		}
	}
	return platformRule{}, false
}

// ContentSelectors returns content selectors for the platform, most specific first.
// Unknown platforms use JobPostingSelectors.
func (p Platform) ContentSelectors() []string {
	rule, ok := p.rule()
	if !ok {
		return JobPostingSelectors()
	}
	return append(append([]string{}, rule.content...), JobPostingSelectors()...)
}

// NoiseSelectors returns the elements stripped before text extraction.
func (p Platform) NoiseSelectors() []string {
	out := append([]string{}, commonNoise...)
	if rule, ok := p.rule(); ok {
		out = append(out, rule.noise...)
	}
	return out
}
