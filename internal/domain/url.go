package domain

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/marks/internal/errs"
)

// URL is the structured decomposition of a bookmark href.
// Every field is always present; missing components are "".
type URL struct {
	Href     string `json:"href"`
	Protocol string `json:"protocol"` // "https:"
	Auth     string `json:"auth"`     // "user:pass"
	Hostname string `json:"hostname"`
	Port     string `json:"port"`
	Pathname string `json:"pathname"`
	Search   string `json:"search"` // "?a=b"
	Hash     string `json:"hash"`   // "#frag"
}

// Normalize parses an absolute href into its components. Protocol and
// hostname are lowercased, everything else is kept as written. The
// returned Href is rebuilt from the components, so normalizing it again
// yields the same URL.
func Normalize(href string) (URL, error) {
	raw := strings.TrimSpace(href)
	if raw == "" {
		return URL{}, fmt.Errorf("%w: empty href", errs.ErrMalformedURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return URL{}, fmt.Errorf("%w: %v", errs.ErrMalformedURL, err)
	}
	if u.Scheme == "" || u.Opaque != "" {
		return URL{}, fmt.Errorf("%w: %q is not an absolute url", errs.ErrMalformedURL, raw)
	}

	// IPv6 zones name an interface and keep their case.
	addr, zone, zoned := strings.Cut(u.Hostname(), "%")
	hostname := strings.ToLower(addr)
	if zoned {
		hostname += "%" + zone
	}
	if hostname == "" {
		return URL{}, fmt.Errorf("%w: %q has no host", errs.ErrMalformedURL, raw)
	}

	out := URL{
		Protocol: strings.ToLower(u.Scheme) + ":",
		Hostname: hostname,
		Port:     u.Port(),
		Pathname: u.EscapedPath(),
	}
	if u.User != nil {
		out.Auth = u.User.String()
	}
	if u.RawQuery != "" {
		out.Search = "?" + u.RawQuery
	}
	if frag := u.EscapedFragment(); frag != "" {
		out.Hash = "#" + frag
	}
	out.Href = out.format()

	return out, nil
}

// Host returns hostname[:port] as it appears in an href. IPv6 literals
// are bracketed and a zone's "%" is escaped as "%25".
func (u URL) Host() string {
	host := u.Hostname
	if strings.Contains(host, ":") {
		host = "[" + strings.Replace(host, "%", "%25", 1) + "]"
	}
	if u.Port != "" {
		return host + ":" + u.Port
	}
	return host
}

func (u URL) format() string {
	var sb strings.Builder
	sb.WriteString(u.Protocol)
	sb.WriteString("//")
	if u.Auth != "" {
		sb.WriteString(u.Auth)
		sb.WriteByte('@')
	}
	sb.WriteString(u.Host())
	sb.WriteString(u.Pathname)
	sb.WriteString(u.Search)
	sb.WriteString(u.Hash)
	return sb.String()
}
