package broadcast

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/heartmarshall/campusconnect-backend/internal/domain"
)

const (
	defaultSubjectPrefix = "CampusConnect Announcement"
	whenLayout           = "Mon, Jan 2 2006 at 15:04 MST"
	dateTBA              = "Date TBA"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/announcement.html.tmpl"))
	textTmpl = texttemplate.Must(texttemplate.New("announcement.txt.tmpl").
			Funcs(texttemplate.FuncMap{"join": strings.Join}).
			ParseFS(templateFS, "templates/announcement.txt.tmpl"))
)

// Renderer turns a submission into the branded announcement email.
type Renderer struct {
	prefix  string
	siteURL string
	loc     *time.Location
	now     func() time.Time
}

// NewRenderer creates a renderer. An empty prefix falls back to the default
// subject prefix; nil loc means UTC.
func NewRenderer(prefix, siteURL string, loc *time.Location) *Renderer {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultSubjectPrefix
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{
		prefix:  prefix,
		siteURL: siteURL,
		loc:     loc,
		now:     time.Now,
	}
}

type announcementView struct {
	Heading     string
	Title       string
	Description string
	Location    string
	When        string
	Tags        []string
	SiteURL     string
	Year        int
}

// Render builds the subject, HTML and plain-text bodies for sub.
func (r *Renderer) Render(sub domain.Submission) (domain.Message, error) {
	now := r.now()
	view := announcementView{
		Heading:     r.prefix,
		Title:       sub.Title,
		Description: sub.Description,
		Location:    sub.Location,
		When:        r.when(sub.OccursAt, now),
		Tags:        sub.Tags,
		SiteURL:     r.siteURL,
		Year:        now.In(r.loc).Year(),
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, view); err != nil {
		return domain.Message{}, err
	}
	if err := textTmpl.Execute(&text, view); err != nil {
		return domain.Message{}, err
	}

	return domain.Message{
		Subject: r.prefix + ": " + sub.Title,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}

func (r *Renderer) when(at *time.Time, now time.Time) string {
	if at == nil {
		return dateTBA
	}
	rel := humanize.RelTime(*at, now, "ago", "from now")
	return at.In(r.loc).Format(whenLayout) + " (" + rel + ")"
}
