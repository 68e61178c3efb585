package model

import (
	"testing"
	"time"
)

func TestNewScheduledPost(t *testing.T) {
	at := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	p := NewScheduledPost("Новый курс!", at, PlatformBoth, "https://example.com/a.jpg", 3)

	if p.ID == "" {
		t.Fatal("post must get an ID")
	}
	if p.Status != PostStatusPending {
		t.Fatalf("new post status = %s, want pending", p.Status)
	}
	if !p.ScheduledDatetime.Equal(at) {
		t.Fatalf("scheduled datetime = %v", p.ScheduledDatetime)
	}
	if p.SheetRowIndex != 3 {
		t.Fatalf("sheet row index = %d", p.SheetRowIndex)
	}
}

func TestValidateForInstagram(t *testing.T) {
	cases := []struct {
		platform Platform
		imageURL string
		wantErr  bool
	}{
		{PlatformFacebook, "", false},
		{PlatformInstagram, "https://example.com/a.jpg", false},
		{PlatformInstagram, "", true},
		{PlatformInstagram, "   ", true},
		{PlatformBoth, "", true},
		{PlatformBoth, "https://example.com/a.jpg", false},
	}
	for _, c := range cases {
		p := &ScheduledPost{Platform: c.platform, ImageURL: c.imageURL}
		err := p.ValidateForInstagram()
		if c.wantErr && err != ErrInstagramRequiresImage {
			t.Fatalf("platform=%s image=%q: error = %v, want ErrInstagramRequiresImage", c.platform, c.imageURL, err)
		}
		if !c.wantErr && err != nil {
			t.Fatalf("platform=%s image=%q: unexpected error %v", c.platform, c.imageURL, err)
		}
	}
}

func TestParsePlatform(t *testing.T) {
	cases := []struct {
		in   string
		want Platform
		ok   bool
	}{
		{"facebook", PlatformFacebook, true},
		{"Facebook", PlatformFacebook, true},
		{" INSTAGRAM ", PlatformInstagram, true},
		{"both", PlatformBoth, true},
		{"", PlatformBoth, false},
		{"twitter", PlatformBoth, false},
	}
	for _, c := range cases {
		got, ok := ParsePlatform(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParsePlatform(%q) = (%s, %v), want (%s, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
