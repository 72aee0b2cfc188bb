// Copyright (c) 2026 Lensfolio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lensfolio/cli/internal/cookies"
)

var sessionJar = []cookies.Cookie{
	{Name: "sessionid", Value: "abc", Domain: ".instagram.com"},
	{Name: "ds_user_id", Value: "123", Domain: ".instagram.com"},
}

func newTestClassifier(rules Rules) *Classifier {
	return NewClassifier(rules, cookies.NewExtractor("instagram.com"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want Class
	}{
		{name: "no url no cookies", sig: Signal{}, want: Incomplete},
		{name: "login form", sig: Signal{URL: "https://www.instagram.com/accounts/login/"}, want: Incomplete},
		{name: "partial jar", sig: Signal{URL: "https://www.instagram.com/", Cookies: sessionJar[:1]}, want: Incomplete},
		{name: "logged in feed", sig: Signal{URL: "https://www.instagram.com/", Cookies: sessionJar}, want: Valid},
		{name: "cookies without url", sig: Signal{Cookies: sessionJar}, want: Valid},
		{name: "cookies on login form", sig: Signal{URL: "https://www.instagram.com/accounts/login/?next=/", Cookies: sessionJar}, want: Incomplete},
		{name: "challenge with cookies", sig: Signal{URL: "https://www.instagram.com/challenge/12345/abc/", Cookies: sessionJar}, want: Challenged},
		{name: "challenge without cookies", sig: Signal{URL: "https://i.instagram.com/challenge/"}, want: Challenged},
		{name: "bare challenge path", sig: Signal{URL: "https://www.instagram.com/challenge"}, want: Challenged},
		{name: "checkpoint upper case", sig: Signal{URL: "https://www.instagram.com/Checkpoint/x"}, want: Challenged},
		{name: "relative challenge", sig: Signal{URL: "/challenge/action/"}, want: Challenged},
		{name: "challenge on other host", sig: Signal{URL: "https://example.com/challenge/", Cookies: sessionJar}, want: Valid},
		{name: "dot segments", sig: Signal{URL: "https://www.instagram.com/explore/../challenge/"}, want: Challenged},
		{name: "malformed url", sig: Signal{URL: "http://[::1", Cookies: sessionJar}, want: Valid},
	}

	c := newTestClassifier(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.sig)
			assert.Equal(t, tt.want, got.Class, got.Reason)
		})
	}
}

func TestClassifyValidCarriesSession(t *testing.T) {
	res := newTestClassifier(DefaultRules()).Classify(Signal{URL: "https://www.instagram.com/", Cookies: sessionJar})

	assert.Equal(t, Valid, res.Class)
	assert.Equal(t, "abc", res.Session.SessionID)
	assert.Equal(t, "123", res.Session.UserID)
}

func TestClassifyBodyMarker(t *testing.T) {
	rules := DefaultRules()
	rules.BodyMarkers = []string{"", "challenge_required"}
	c := newTestClassifier(rules)

	res := c.Classify(Signal{URL: "https://www.instagram.com/", Cookies: sessionJar, Body: []byte(`{"message":"challenge_required"}`)})
	assert.Equal(t, Challenged, res.Class)

	res = c.Classify(Signal{URL: "https://www.instagram.com/", Cookies: sessionJar, Body: []byte("<html>feed</html>")})
	assert.Equal(t, Valid, res.Class)
}

func TestCustomRules(t *testing.T) {
	c := newTestClassifier(Rules{ChallengePaths: []string{"verify/", "  "}})

	assert.Equal(t, Challenged, c.Classify(Signal{URL: "https://instagram.com/verify/sms"}).Class)
	assert.Equal(t, Incomplete, c.Classify(Signal{URL: "https://instagram.com/challenge/"}).Class)
	// No login paths configured: cookies alone are enough.
	assert.Equal(t, Valid, c.Classify(Signal{URL: "https://instagram.com/accounts/login/", Cookies: sessionJar}).Class)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "valid", Valid.String())
	assert.Equal(t, "incomplete", Incomplete.String())
	assert.Equal(t, "challenged", Challenged.String())
}
