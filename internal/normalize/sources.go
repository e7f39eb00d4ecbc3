package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"internhunt-engine/internal/domain"
	"internhunt-engine/internal/scrape/util"
)

// greenhouse: boards-api /v1/boards/<slug>/jobs
func greenhouseFields(raw domain.RawRecord) fields {
	d := raw.Fields
	return fields{
		title:    getString(d, "title"),
		url:      getString(d, "absolute_url"),
		location: firstLocation(d, "location", "offices"),
		tags:     stringList(d, "departments"),
	}
}

// lever: api.lever.co/v0/postings/<slug>?mode=json
func leverFields(raw domain.RawRecord) fields {
	d := raw.Fields
	return fields{
		title:    getString(d, "text"),
		url:      getString(d, "hostedUrl", "applyUrl"),
		location: firstLocation(d, "categories.location", "categories.allLocations"),
		tags:     stringList(d, "categories.team", "categories.department", "tags"),
	}
}

// ashby: posting-api/job-board/<slug>
func ashbyFields(raw domain.RawRecord) fields {
	d := raw.Fields
	return fields{
		title:    getString(d, "title"),
		url:      getString(d, "jobUrl", "applyUrl"),
		location: firstLocation(d, "locationName", "location", "address.postalAddress", "secondaryLocations"),
		tags:     stringList(d, "department", "team"),
	}
}

// workday: cxs jobPostings entries; externalPath is relative to the board host.
func workdayFields(raw domain.RawRecord) fields {
	d := raw.Fields
	link := getString(d, "externalUrl")
	if link == "" {
		if path := getString(d, "externalPath"); path != "" {
			link = util.ResolveURL(boardOrigin(raw.Board), path)
		}
	}
	return fields{
		title:    getString(d, "title"),
		url:      link,
		location: firstLocation(d, "locationsText", "location"),
	}
}

// smartrecruiters: /v1/companies/<slug>/postings content entries.
func smartRecruitersFields(raw domain.RawRecord) fields {
	d := raw.Fields
	link := getString(d, "postingUrl", "applyUrl")
	if link == "" {
		if id := getString(d, "id", "uuid"); id != "" && raw.Board != "" {
			link = fmt.Sprintf("https://jobs.smartrecruiters.com/%s/%s", url.PathEscape(raw.Board), url.PathEscape(id))
		}
	}
	return fields{
		title:    getString(d, "name"),
		url:      link,
		location: firstLocation(d, "location"),
		tags:     stringList(d, "department.label", "function.label"),
	}
}

// html: anchors scraped from a career page.
func htmlFields(raw domain.RawRecord) fields {
	d := raw.Fields
	return fields{
		title:    getString(d, "title"),
		url:      util.ResolveURL(raw.Board, getString(d, "href")),
		location: firstLocation(d, "location", "default_location"),
	}
}

// manual: curated entries from config.
func manualFields(raw domain.RawRecord) fields {
	d := raw.Fields
	title := getString(d, "title_hint", "role", "title")
	if title == "" {
		title = "Internship"
	}
	return fields{
		company:  getString(d, "company"),
		title:    title,
		url:      getString(d, "url", "apply_url", "link"),
		location: firstLocation(d, "location"),
		deadline: getString(d, "deadline"),
		tags:     stringList(d, "tags"),
		notes:    getString(d, "notes"),
	}
}

func boardOrigin(board string) string {
	u, err := url.Parse(strings.TrimSpace(board))
	if err != nil || u.Host == "" {
		return ""
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + u.Host
}
