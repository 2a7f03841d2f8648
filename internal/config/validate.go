package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims and dedupes the list-valued settings and
// reports what is broken or suspicious. Letter-specific preconditions
// (readable CV, complete profile) are checked by the pipeline, since
// they only matter when letter generation is requested.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.HTTP.UserAgents = trimList(out.HTTP.UserAgents)
	out.Hellowork.BlockMarkers = trimList(out.Hellowork.BlockMarkers)
	out.Hellowork.Anchors = trimList(out.Hellowork.Anchors)
	out.Skills.Vocabulary = trimList(out.Skills.Vocabulary)

	if len(out.HTTP.UserAgents) == 0 {
		res.addErr("http.user_agents is empty")
	}
	if len(out.Skills.Vocabulary) == 0 {
		res.addWarn("skills.vocabulary is empty; no skills will ever match")
	}
	if !strings.HasPrefix(out.Hellowork.BaseURL, "http") {
		res.addErr("hellowork.base_url %q is not an http(s) URL", out.Hellowork.BaseURL)
	}
	if out.HTTP.MaxRetries > 10 {
		res.addWarn("http.max_retries=%d is high; blocked pages will stall for a long time", out.HTTP.MaxRetries)
	}

	return out, res
}
