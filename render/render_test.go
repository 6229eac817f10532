package render

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/use-agent/folio/models"
)

func fullProfile() *models.Profile {
	return &models.Profile{
		SourceURL: "https://example.com/portfolio",
		BasicInfo: models.BasicInfo{
			Name:  "Dellin Zhang",
			Role:  "Video Editor",
			Bio:   models.Some("Cuts trailers."),
			Image: models.Some("https://img.example/dellin.png"),
		},
		Employers: []models.Employer{
			{ID: "1", Name: "Acme", Image: models.Some("https://img.example/acme.png")},
			{ID: "2", Name: "Initech"},
		},
		Videos: []models.Video{
			{ID: "v1", URL: "https://www.youtube.com/embed/abc"},
			{ID: "v2", URL: "https://player.vimeo.com/video/123"},
		},
	}
}

func parse(t *testing.T, v *View) *goquery.Document {
	t.Helper()
	fragment, err := HTML(v)
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse fragment: %v", err)
	}
	return doc
}

func TestRender_Nil(t *testing.T) {
	if v := Render(nil); v != nil {
		t.Fatalf("Render(nil) = %+v, want nil", v)
	}
	out, err := HTML(nil)
	if err != nil || out != "" {
		t.Errorf("HTML(nil) = %q, %v", out, err)
	}
}

func TestRender_Full(t *testing.T) {
	doc := parse(t, Render(fullProfile()))

	if got := doc.Find(".name").Text(); got != "Dellin Zhang" {
		t.Errorf("name = %q", got)
	}
	if got := doc.Find(".role").Text(); got != "Video Editor" {
		t.Errorf("role = %q", got)
	}
	if got := doc.Find(".bio").Text(); got != "Cuts trailers." {
		t.Errorf("bio = %q", got)
	}
	if src, _ := doc.Find(".identity-image").Attr("src"); src != "https://img.example/dellin.png" {
		t.Errorf("identity image = %q", src)
	}
	if n := doc.Find(".employer-card").Length(); n != 2 {
		t.Errorf("employer cards = %d, want 2", n)
	}
	if n := doc.Find(".employer-card .employer-image").Length(); n != 1 {
		t.Errorf("employer images = %d, want 1", n)
	}
	var srcs []string
	doc.Find("iframe.video-embed").Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		srcs = append(srcs, src)
	})
	if len(srcs) != 2 || srcs[0] != "https://www.youtube.com/embed/abc" || srcs[1] != "https://player.vimeo.com/video/123" {
		t.Errorf("video embeds = %v", srcs)
	}
	if href, _ := doc.Find(".source a").Attr("href"); href != "https://example.com/portfolio" {
		t.Errorf("source link = %q", href)
	}
}

func TestRender_AbsentEmployersAndVideos(t *testing.T) {
	p := fullProfile()
	p.Employers = nil
	p.Videos = nil

	v := Render(p)
	if v.Employers == nil || len(v.Employers) != 0 {
		t.Errorf("employers = %v, want empty list", v.Employers)
	}
	if v.Videos == nil || len(v.Videos) != 0 {
		t.Errorf("videos = %v, want empty list", v.Videos)
	}

	doc := parse(t, v)
	if n := doc.Find(".employer-card").Length(); n != 0 {
		t.Errorf("employer cards = %d", n)
	}
	if n := doc.Find("iframe").Length(); n != 0 {
		t.Errorf("video embeds = %d", n)
	}
}

func TestRender_AbsentImageUsesPlaceholder(t *testing.T) {
	p := fullProfile()
	p.BasicInfo.Image = models.None[string]()
	p.BasicInfo.Bio = models.None[string]()

	v := Render(p)
	if !v.Identity.Placeholder || v.Identity.Image != PlaceholderImage {
		t.Fatalf("identity = %+v", v.Identity)
	}

	doc := parse(t, v)
	if src, _ := doc.Find(".identity-image.placeholder").Attr("src"); src != PlaceholderImage {
		t.Errorf("placeholder src = %q", src)
	}
	if doc.Find(".name").Text() != "Dellin Zhang" || doc.Find(".role").Text() != "Video Editor" {
		t.Error("name and role must render without an image")
	}
	if doc.Find(".bio").Length() != 0 {
		t.Error("absent bio rendered")
	}
}

func TestRender_MinimalProfile(t *testing.T) {
	p := &models.Profile{
		SourceURL: "https://example.com/portfolio",
		BasicInfo: models.BasicInfo{Name: "A", Role: "Editor"},
		Employers: []models.Employer{},
		Videos:    []models.Video{},
	}
	doc := parse(t, Render(p))
	if doc.Find(".name").Text() != "A" || doc.Find(".role").Text() != "Editor" {
		t.Errorf("identity = %q / %q", doc.Find(".name").Text(), doc.Find(".role").Text())
	}
	if doc.Find(".employer-card").Length() != 0 || doc.Find("iframe").Length() != 0 {
		t.Error("expected no employer cards and no embeds")
	}
}

func TestRender_UnsafeVideoURLIsNeutralised(t *testing.T) {
	p := fullProfile()
	p.Videos = []models.Video{{ID: "x", URL: "javascript:alert(1)"}}
	doc := parse(t, Render(p))
	src, _ := doc.Find("iframe").Attr("src")
	if strings.HasPrefix(src, "javascript:") {
		t.Errorf("unsafe src passed through: %q", src)
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown(Render(fullProfile()), "")
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	for _, want := range []string{"Dellin Zhang", "Video Editor", "Acme", "Initech", "https://www.youtube.com/embed/abc"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "<iframe") {
		t.Error("markdown should not contain iframes")
	}

	empty, err := Markdown(nil, "")
	if err != nil || empty != "" {
		t.Errorf("Markdown(nil) = %q, %v", empty, err)
	}
}

func TestSelect(t *testing.T) {
	fragment, err := HTML(Render(fullProfile()))
	if err != nil {
		t.Fatal(err)
	}

	employers, err := Select(fragment, Sections["employers"])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(employers, "Acme") || strings.Contains(employers, "Dellin Zhang") {
		t.Errorf("employers section = %q", employers)
	}

	none, err := Select(fragment, ".nothing-here")
	if err != nil || none != "" {
		t.Errorf("unmatched selector = %q, %v", none, err)
	}

	if _, err := Select(fragment, "[[["); err == nil {
		t.Error("invalid selector should fail")
	}
}

func TestStaticServesPlaceholder(t *testing.T) {
	f, err := Static().Open(strings.TrimPrefix(PlaceholderImage, "/static/"))
	if err != nil {
		t.Fatalf("open placeholder: %v", err)
	}
	f.Close()
}
