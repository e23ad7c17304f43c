package utils

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// 一个页面上会同时渲染几十条评论，所以不生成 heading id，避免 id 冲突
var (
	userMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
			gmhtml.WithXHTML(),
		),
	)
	userPolicy = newUserPolicy()
)

func newUserPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	p.RequireNoFollowOnLinks(true)
	return p
}

// RenderMarkdown turns user-written markdown into sanitized HTML for idea descriptions and comments.
func RenderMarkdown(source string) string {
	if source == "" {
		return ""
	}

	var out bytes.Buffer
	if err := userMarkdown.Convert([]byte(source), &out); err != nil {
		return html.EscapeString(source)
	}
	return EnhanceHTMLContent(userPolicy.Sanitize(out.String()))
}
