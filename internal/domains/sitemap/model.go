package sitemap

import "encoding/xml"

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URLSet is the <urlset> root of a sitemap document.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

// Summary describes one generation run.
type Summary struct {
	Content int `json:"content"`
	People  int `json:"people"`
	Skipped int `json:"skipped"`
}

// staticPages are always listed, ahead of the records.
var staticPages = []URL{
	{Loc: "/", ChangeFreq: "daily", Priority: 1.0},
	{Loc: "/series", ChangeFreq: "daily", Priority: 0.8},
	{Loc: "/movies", ChangeFreq: "daily", Priority: 0.8},
	{Loc: "/people", ChangeFreq: "weekly", Priority: 0.6},
}
