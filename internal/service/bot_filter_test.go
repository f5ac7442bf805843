package service

import "testing"

func TestIsBot(t *testing.T) {
	cases := []struct {
		name      string
		userAgent string
		want      bool
	}{
		{name: "googlebot", userAgent: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", want: true},
		{name: "bingbot", userAgent: "Mozilla/5.0 (compatible; bingbot/2.0)", want: true},
		{name: "curl", userAgent: "curl/8.5.0", want: true},
		{name: "python_requests", userAgent: "python-requests/2.31.0", want: true},
		{name: "headless_chrome", userAgent: "Mozilla/5.0 HeadlessChrome/120.0", want: true},
		{name: "uppercase_signature", userAgent: "SCRAPY/2.11", want: true},
		{name: "empty_ua_treated_as_bot", userAgent: "", want: true},
		{name: "blank_ua_treated_as_bot", userAgent: "   ", want: true},
		{name: "desktop_firefox", userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:122.0) Gecko/20100101 Firefox/122.0", want: false},
		{name: "mobile_safari", userAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_2 like Mac OS X) AppleWebKit/605.1.15 Version/17.2 Mobile/15E148 Safari/604.1", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsBot(tc.userAgent); got != tc.want {
				t.Fatalf("IsBot(%q) = %v, want %v", tc.userAgent, got, tc.want)
			}
		})
	}
}
