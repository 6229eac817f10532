package render

import "github.com/use-agent/folio/models"

// PlaceholderImage is shown in the identity block when the profile has no image.
const PlaceholderImage = "/static/placeholder.svg"

// View is the renderable tree for one profile.
type View struct {
	SourceURL string
	Identity  Identity
	Employers []EmployerCard
	Videos    []VideoEmbed
}

// Identity is the name/role/bio/image block.
type Identity struct {
	Name string
	Role string

	Bio    string
	HasBio bool

	// Image is the profile image, or PlaceholderImage when the profile
	// has none.
	Image       string
	Placeholder bool
}

// EmployerCard is one entry of the client list.
type EmployerCard struct {
	ID       string
	Name     string
	Image    string
	HasImage bool
}

// VideoEmbed is one embedded player, addressed by its URL.
type VideoEmbed struct {
	ID  string
	Src string
}

// Render maps a profile to its view. A nil profile renders to nil,
// meaning no profile section at all.
func Render(p *models.Profile) *View {
	if p == nil {
		return nil
	}

	v := &View{
		SourceURL: p.SourceURL,
		Identity: Identity{
			Name: p.BasicInfo.Name,
			Role: p.BasicInfo.Role,
		},
		Employers: make([]EmployerCard, 0, len(p.Employers)),
		Videos:    make([]VideoEmbed, 0, len(p.Videos)),
	}

	v.Identity.Bio, v.Identity.HasBio = p.BasicInfo.Bio.Get()
	if img, ok := p.BasicInfo.Image.Get(); ok {
		v.Identity.Image = img
	} else {
		v.Identity.Image = PlaceholderImage
		v.Identity.Placeholder = true
	}

	for _, e := range p.Employers {
		card := EmployerCard{ID: string(e.ID), Name: e.Name}
		card.Image, card.HasImage = e.Image.Get()
		v.Employers = append(v.Employers, card)
	}
	for _, vid := range p.Videos {
		v.Videos = append(v.Videos, VideoEmbed{ID: string(vid.ID), Src: vid.URL})
	}
	return v
}
