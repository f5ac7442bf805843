package service

import "strings"

// botSignatures 收录常见爬虫与抓取工具的 UA 关键词，全部小写。
var botSignatures = []string{
	"bot",
	"crawler",
	"spider",
	"slurp",
	"curl",
	"wget",
	"python-requests",
	"python/",
	"go-http-client",
	"java/",
	"okhttp",
	"httpclient",
	"axios",
	"node-fetch",
	"headless",
	"phantomjs",
	"lighthouse",
	"pingdom",
	"uptimerobot",
	"facebookexternalhit",
	"whatsapp/",
	"telegrambot",
	"preview",
	"scrapy",
}

// IsBot 基于 UA 关键词判断请求是否来自爬虫。
// 约定：空 User-Agent 一律按爬虫处理，正常浏览器总会携带 UA。
func IsBot(userAgent string) bool {
	ua := strings.ToLower(strings.TrimSpace(userAgent))
	if ua == "" {
		return true
	}

	for _, sig := range botSignatures {
		if strings.Contains(ua, sig) {
			return true
		}
	}

	return false
}
