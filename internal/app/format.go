package app

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"dingnews/internal/news"
)

// blockSeparator is the horizontal rule DingTalk renders between
// articles.
const blockSeparator = "\n\n---\n\n"

// FormatMessage renders the selected articles into one markdown body.
// Rendering is deterministic for a given ordered input.
func FormatMessage(articles []news.Article) string {
	blocks := lo.Map(articles, func(a news.Article, i int) string {
		return renderBlock(a, i+1)
	})
	return strings.Join(blocks, blockSeparator)
}

// renderBlock formats a single article: numbered linked title, source
// line (region appended only when present), publish time, and an image
// embed when there is one.
func renderBlock(a news.Article, n int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d. [%s](%s)\n\n", n, a.Title, a.URL)

	b.WriteString("🌐 来源：")
	b.WriteString(a.Source)
	if a.Region != "" {
		b.WriteString(" | 地区：")
		b.WriteString(a.Region)
	}

	b.WriteString("\n🕘 时间：")
	b.WriteString(a.Published)

	if a.Image != "" {
		b.WriteString("\n![图片](")
		b.WriteString(a.Image)
		b.WriteString(")")
	}

	return b.String()
}
