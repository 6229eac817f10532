package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Profile is the structured result returned by the extraction service for
// a single portfolio URL. A Profile is never merged with another one.
type Profile struct {
	// SourceURL echoes the submitted URL. It is not part of the service
	// response; the controller fills it in from the submission.
	SourceURL string `json:"source_url"`

	BasicInfo BasicInfo  `json:"basic_info"`
	Employers []Employer `json:"employers"`
	Videos    []Video    `json:"videos"`
}

// BasicInfo is the identity block of a Profile.
// Name and Role are assumed present in a well-formed response.
type BasicInfo struct {
	Name  string      `json:"name"`
	Role  string      `json:"role"`
	Bio   Opt[string] `json:"bio"`
	Image Opt[string] `json:"image"`
}

// Employer is a client or employer listed on the portfolio.
type Employer struct {
	ID    ID          `json:"id"`
	Name  string      `json:"name"`
	Image Opt[string] `json:"image"`
}

// Video is an embeddable video from the portfolio reel.
type Video struct {
	ID  ID     `json:"id"`
	URL string `json:"url"`
}

// UnmarshalJSON decodes a Profile, normalising absent or null lists to
// empty slices so callers never have to distinguish the two.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type raw Profile
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	if r.Employers == nil {
		r.Employers = []Employer{}
	}
	if r.Videos == nil {
		r.Videos = []Video{}
	}
	*p = Profile(r)
	return nil
}

// ID is an employer or video identifier. The service emits either JSON
// strings or numbers; both are kept in their textual form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: expected string or number, got %s", data)
	}
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		*id = ID(strconv.FormatInt(i, 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}
