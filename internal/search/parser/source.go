package parser

import (
	"net/url"
	"strings"

	"github.com/lk2023060901/ai-study-backend/internal/search/types"
)

// MaxQuickSources 快速模式保留的来源上限
const MaxQuickSources = 4

// SourceHost 提取来源主机名：小写、去端口、去掉开头的 "www."
// URL 无法解析或缺少主机时返回 false
func SourceHost(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "", false
	}
	return host, true
}

// citationsToSources 引用转来源：丢弃不可用 URL，按 URL 去重（保留首次出现），再截断到 limit
func citationsToSources(citations []types.Citation, limit int) []types.WebResource {
	sources := make([]types.WebResource, 0, len(citations))
	seen := make(map[string]struct{}, len(citations))

	for _, c := range citations {
		link := strings.TrimSpace(c.URL)
		host, ok := SourceHost(link)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = host
		}
		sources = append(sources, types.WebResource{
			Title:  title,
			URL:    link,
			Source: host,
		})
	}

	if limit > 0 && len(sources) > limit {
		sources = sources[:limit]
	}
	return sources
}

// linksToSources 深度模式链接转来源，不去重也不截断
func linksToSources(links []types.Link) []types.WebResource {
	sources := make([]types.WebResource, 0, len(links))
	for _, l := range links {
		host, _ := SourceHost(l.URL)
		sources = append(sources, types.WebResource{
			Title:  l.Title,
			URL:    l.URL,
			Source: host,
		})
	}
	return sources
}

// linksToVideos 深度模式视频链接，query 与标题相同
func linksToVideos(links []types.Link) []types.VideoResource {
	videos := make([]types.VideoResource, 0, len(links))
	for _, l := range links {
		videos = append(videos, types.VideoResource{
			Title: l.Title,
			Query: l.Title,
			URL:   l.URL,
		})
	}
	return videos
}
