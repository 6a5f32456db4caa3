package services

import (
	"fmt"
	"html/template"
	"strings"
)

type emailMetaItem struct {
	Label string
	Value string
}

func escapeParagraph(text string) string {
	escaped := template.HTMLEscapeString(strings.TrimSpace(text))
	escaped = strings.ReplaceAll(strings.ReplaceAll(escaped, "\r\n", "\n"), "\r", "\n")
	return strings.ReplaceAll(escaped, "\n", "<br />")
}

func buildEmailTemplate(subject, recipientName string, paragraphs []string, meta []emailMetaItem) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "participant"
	}

	var content strings.Builder
	content.WriteString(`<p style="margin:0 0 18px 0;line-height:1.7;">`)
	content.WriteString(template.HTMLEscapeString("Dear " + name + ","))
	content.WriteString(`</p>`)
	for _, paragraph := range paragraphs {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		content.WriteString(`<p style="margin:0 0 18px 0;line-height:1.7;word-break:break-word;">`)
		content.WriteString(escapeParagraph(paragraph))
		content.WriteString(`</p>`)
	}

	metaSection := ""
	rows := make([]emailMetaItem, 0, len(meta))
	for _, item := range meta {
		label := strings.TrimSpace(item.Label)
		value := strings.TrimSpace(item.Value)
		if label == "" || value == "" {
			continue
		}
		rows = append(rows, emailMetaItem{Label: label, Value: value})
	}
	if len(rows) > 0 {
		var b strings.Builder
		b.WriteString(`<table role="presentation" cellpadding="0" cellspacing="0" width="100%" style="border:1px solid #e5e7eb;border-radius:12px;background-color:#f9fafb;margin:0 0 24px 0;">
<tbody>`)
		for i, row := range rows {
			border := "border-bottom:1px solid #e5e7eb;"
			if i == len(rows)-1 {
				border = ""
			}
			b.WriteString(fmt.Sprintf(`<tr>
<td style="padding:12px 16px;font-size:13px;color:#6b7280;width:38%%;%s">%s</td>
<td style="padding:12px 16px;font-size:15px;color:#111827;font-weight:600;%swhite-space:pre-wrap;">%s</td>
</tr>
`, border, template.HTMLEscapeString(row.Label), border, template.HTMLEscapeString(row.Value)))
		}
		b.WriteString(`</tbody>
</table>`)
		metaSection = b.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
<div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
<h1 style="margin:0 0 20px 0;font-size:22px;font-weight:700;color:#111827;line-height:1.35;">%s</h1>
<div style="color:#1f2937;font-size:16px;line-height:1.75;word-break:break-word;">
%s
</div>
%s
</div>
</div>
</body>
</html>`, template.HTMLEscapeString(subject), template.HTMLEscapeString(subject), content.String(), metaSection)
}
