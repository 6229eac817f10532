package models

import (
	"encoding/json"
	"testing"
)

func TestProfileDecode_OptionalFields(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantBio       bool
		wantImage     bool
		wantEmployers int
		wantVideos    int
	}{
		{
			name: "minimal",
			body: `{"basic_info":{"name":"A","role":"Editor"}}`,
		},
		{
			name: "null lists and fields",
			body: `{"basic_info":{"name":"A","role":"Editor","bio":null,"image":null},"employers":null,"videos":null}`,
		},
		{
			name: "empty strings are absent",
			body: `{"basic_info":{"name":"A","role":"Editor","bio":"","image":""},"employers":[],"videos":[]}`,
		},
		{
			name:          "full",
			body:          `{"basic_info":{"name":"A","role":"Editor","bio":"Cuts things.","image":"https://img/a.png"},"employers":[{"id":1,"name":"Acme","image":"https://img/acme.png"},{"id":"b2","name":"Initech"}],"videos":[{"id":7,"url":"https://www.youtube.com/embed/x"}]}`,
			wantBio:       true,
			wantImage:     true,
			wantEmployers: 2,
			wantVideos:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Profile
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.BasicInfo.Bio.Present() != tt.wantBio {
				t.Errorf("bio present = %v", p.BasicInfo.Bio.Present())
			}
			if p.BasicInfo.Image.Present() != tt.wantImage {
				t.Errorf("image present = %v", p.BasicInfo.Image.Present())
			}
			if p.Employers == nil || len(p.Employers) != tt.wantEmployers {
				t.Errorf("employers = %v", p.Employers)
			}
			if p.Videos == nil || len(p.Videos) != tt.wantVideos {
				t.Errorf("videos = %v", p.Videos)
			}
		})
	}
}

func TestIDDecode(t *testing.T) {
	var e []Employer
	body := `[{"id":12,"name":"a"},{"id":"x-1","name":"b"},{"id":null,"name":"c"},{"id":1.5,"name":"d"}]`
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatal(err)
	}
	want := []ID{"12", "x-1", "", "1.5"}
	for i, w := range want {
		if e[i].ID != w {
			t.Errorf("employers[%d].ID = %q, want %q", i, e[i].ID, w)
		}
	}

	var bad ID
	if err := json.Unmarshal([]byte(`{"a":1}`), &bad); err == nil {
		t.Error("object id should fail to decode")
	}
}

func TestOpt(t *testing.T) {
	if v, ok := Some("x").Get(); !ok || v != "x" {
		t.Errorf("Some: %q %v", v, ok)
	}
	if None[string]().Present() {
		t.Error("None is present")
	}
	if got := None[string]().Or("fallback"); got != "fallback" {
		t.Errorf("Or = %q", got)
	}

	out, err := json.Marshal(BasicInfo{Name: "A", Role: "R", Bio: Some("hi")})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"name":"A","role":"R","bio":"hi","image":null}`
	if string(out) != want {
		t.Errorf("marshal = %s, want %s", out, want)
	}
}
